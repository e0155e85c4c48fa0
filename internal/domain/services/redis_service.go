package services

import (
	"context"
	"encoding/json"
	"time"

	"desk-management-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// 自动分配开关的缓存键与TTL
const (
	autoAssignmentCacheKey = "settings:auto_assignment"
	autoAssignmentCacheTTL = 30 * time.Second
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheAutoAssignment(enabled bool) error
	GetAutoAssignment() (bool, error)
	InvalidateAutoAssignment() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheAutoAssignment 缓存自动分配开关
func (s *RedisService) CacheAutoAssignment(enabled bool) error {
	return s.Set(autoAssignmentCacheKey, enabled, autoAssignmentCacheTTL)
}

// GetAutoAssignment 从缓存读取自动分配开关
func (s *RedisService) GetAutoAssignment() (bool, error) {
	var enabled bool
	if err := s.Get(autoAssignmentCacheKey, &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// InvalidateAutoAssignment 使自动分配开关缓存失效
func (s *RedisService) InvalidateAutoAssignment() error {
	return s.Delete(autoAssignmentCacheKey)
}
