package controllers

import (
	"desk-management-service/internal/app/middleware"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController 健康检查控制器
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. Ping 健康检查端点
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// 2. Status 返回数据库连通状态
func (c *HealthController) Status() {
	dbStatus := "up"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	response.Success(c.Ctx, gin.H{
		"status":   "healthy",
		"database": dbStatus,
	})
}

// 3. CacheStats 返回响应缓存统计
func (c *HealthController) CacheStats() {
	response.Success(c.Ctx, middleware.CacheStats())
}
