package controllers

import (
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceSettingsController 定义系统设置控制器接口
type InterfaceSettingsController interface {
	GetSettings()
	UpdateAutoAssignment()
}

// SettingsController 处理系统设置相关的请求
type SettingsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSettingsController 创建一个新的系统设置控制器
func NewSettingsController(ctx *gin.Context, container *container.ServiceContainer) *SettingsController {
	return &SettingsController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateAutoAssignmentRequest 表示更新自动分配开关的请求
type UpdateAutoAssignmentRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"true"`
}

// HandleSettingsFunc 返回一个处理系统设置请求的Gin处理函数
func HandleSettingsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSettingsController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "updateAutoAssignment":
			controller.UpdateAutoAssignment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetSettings 获取系统设置
// @Summary 获取系统设置
// @Description 获取系统设置；设置行缺失时返回默认值（自动分配关闭）
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /settings [get]
func (c *SettingsController) GetSettings() {
	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.GetSettings()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取系统设置失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, settings)
}

// 2. UpdateAutoAssignment 更新自动分配开关
// @Summary 更新自动分配开关
// @Description 开启或关闭工位申请的自动分配
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body UpdateAutoAssignmentRequest true "开关状态"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/auto-assignment [put]
func (c *SettingsController) UpdateAutoAssignment() {
	var req UpdateAutoAssignmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.SetAutoAssignment(*req.Enabled)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新自动分配开关失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, settings)
}
