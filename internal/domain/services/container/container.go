package container

import (
	"context"
	"log"
	"sync"
	"time"

	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 核心业务服务
	availabilityService services.InterfaceAvailabilityService
	assignmentService   services.InterfaceAssignmentService
	deskService         services.InterfaceDeskService
	deskRequestService  services.InterfaceDeskRequestService
	settingsService     services.InterfaceSettingsService

	// 人员服务
	employeeService services.InterfaceEmployeeService
	userService     services.InterfaceUserService

	// 配置管理服务
	adminConfigService services.InterfaceAdminConfigService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// 核心业务服务
	c.availabilityService = services.NewAvailabilityService(c.db, c.config)
	c.assignmentService = services.NewAssignmentService(c.db, c.config, c.availabilityService)
	c.deskService = services.NewDeskService(c.db, c.config)
	c.settingsService = services.NewSettingsService(c.db, c.config, c.redisService)
	c.deskRequestService = services.NewDeskRequestService(c.db, c.config, c.availabilityService, c.settingsService)

	// 人员服务
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config, c.employeeService)

	// 配置管理服务
	c.adminConfigService = services.NewAdminConfigService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "availability":
		return c.availabilityService
	case "assignment":
		return c.assignmentService
	case "desk":
		return c.deskService
	case "desk_request":
		return c.deskRequestService
	case "settings":
		return c.settingsService
	case "employee":
		return c.employeeService
	case "user":
		return c.userService
	case "admin_config":
		return c.adminConfigService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
