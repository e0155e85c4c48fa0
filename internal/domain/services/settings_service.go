package services

import (
	"errors"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"
	"desk-management-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceSettingsService 定义系统设置服务接口
type InterfaceSettingsService interface {
	// GetAutoAssignment 读取自动分配开关；设置行缺失时返回false
	GetAutoAssignment() (bool, error)
	// SetAutoAssignment 更新自动分配开关（不存在时创建GLOBAL行）
	SetAutoAssignment(enabled bool) (*models.SystemSettings, error)
	// GetSettings 获取完整的系统设置
	GetSettings() (*models.SystemSettings, error)
}

// SettingsService 提供系统设置相关的服务
//
// 自动分配开关读多写少，经Redis做短TTL缓存；缓存读写失败只记日志，
// 不影响数据库路径。
type SettingsService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewSettingsService 创建一个新的系统设置服务
func NewSettingsService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceSettingsService {
	return &SettingsService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// 1. GetAutoAssignment 读取自动分配开关
func (s *SettingsService) GetAutoAssignment() (bool, error) {
	if s.Redis != nil {
		if enabled, err := s.Redis.GetAutoAssignment(); err == nil {
			return enabled, nil
		}
	}

	var settings models.SystemSettings
	if err := s.DB.Where("settings_key = ?", models.SystemSettingsKey).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 设置行缺失时自动分配视为关闭
			return false, nil
		}
		return false, err
	}

	if s.Redis != nil {
		if err := s.Redis.CacheAutoAssignment(settings.AutoAssignmentEnabled); err != nil {
			logger.Warning("缓存自动分配开关失败: %v", err)
		}
	}

	return settings.AutoAssignmentEnabled, nil
}

// 2. SetAutoAssignment 更新自动分配开关
func (s *SettingsService) SetAutoAssignment(enabled bool) (*models.SystemSettings, error) {
	var settings models.SystemSettings

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("settings_key = ?", models.SystemSettingsKey).First(&settings).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			settings = models.SystemSettings{
				SettingsKey:           models.SystemSettingsKey,
				AutoAssignmentEnabled: enabled,
			}
			return tx.Create(&settings).Error
		}

		settings.AutoAssignmentEnabled = enabled
		return tx.Model(&settings).Update("auto_assignment_enabled", enabled).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.InvalidateAutoAssignment(); err != nil {
			logger.Warning("使自动分配开关缓存失效失败: %v", err)
		}
	}

	return &settings, nil
}

// 3. GetSettings 获取完整的系统设置
func (s *SettingsService) GetSettings() (*models.SystemSettings, error) {
	var settings models.SystemSettings
	if err := s.DB.Where("settings_key = ?", models.SystemSettingsKey).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.SystemSettings{
				SettingsKey:           models.SystemSettingsKey,
				AutoAssignmentEnabled: false,
			}, nil
		}
		return nil, err
	}
	return &settings, nil
}
