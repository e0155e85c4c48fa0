package controllers

import (
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAdminConfigController 定义楼层与部门配置控制器接口
type InterfaceAdminConfigController interface {
	GetFloors()
	CreateFloor()
	GetDepartments()
	CreateDepartment()
}

// AdminConfigController 处理楼层与部门配置请求
type AdminConfigController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminConfigController 创建一个新的配置管理控制器
func NewAdminConfigController(ctx *gin.Context, container *container.ServiceContainer) *AdminConfigController {
	return &AdminConfigController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateFloorRequest 表示创建楼层的请求
type CreateFloorRequest struct {
	Name   string `json:"name" binding:"required" example:"二楼"`
	Number int    `json:"number" binding:"required" example:"2"`
}

// CreateDepartmentRequest 表示创建部门的请求
type CreateDepartmentRequest struct {
	Name    string `json:"name" binding:"required" example:"Engineering"`
	FloorID uint   `json:"floor_id" binding:"required" example:"2"`
}

// HandleAdminConfigFunc 返回一个处理配置管理请求的Gin处理函数
func HandleAdminConfigFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminConfigController(ctx, container)

		switch method {
		case "getFloors":
			controller.GetFloors()
		case "createFloor":
			controller.CreateFloor()
		case "getDepartments":
			controller.GetDepartments()
		case "createDepartment":
			controller.CreateDepartment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetFloors 获取全部楼层
// @Summary 获取楼层列表
// @Description 获取全部楼层及其挂载的部门
// @Tags AdminConfig
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin-config/floors [get]
func (c *AdminConfigController) GetFloors() {
	configService := c.Container.GetService("admin_config").(services.InterfaceAdminConfigService)
	floors, err := configService.GetAllFloors()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼层列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, floors)
}

// 2. CreateFloor 创建楼层
// @Summary 创建楼层
// @Description 创建一个新楼层，楼层号唯一
// @Tags AdminConfig
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param floor body CreateFloorRequest true "楼层信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin-config/floors [post]
func (c *AdminConfigController) CreateFloor() {
	var req CreateFloorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	configService := c.Container.GetService("admin_config").(services.InterfaceAdminConfigService)
	floor, err := configService.CreateFloor(req.Name, req.Number)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, floor)
}

// 3. GetDepartments 获取全部部门
// @Summary 获取部门列表
// @Description 获取全部部门及其所在楼层
// @Tags AdminConfig
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin-config/departments [get]
func (c *AdminConfigController) GetDepartments() {
	configService := c.Container.GetService("admin_config").(services.InterfaceAdminConfigService)
	departments, err := configService.GetAllDepartments()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取部门列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, departments)
}

// 4. CreateDepartment 创建部门
// @Summary 创建部门
// @Description 创建一个新部门并挂到楼层；一个楼层只挂一个部门
// @Tags AdminConfig
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param department body CreateDepartmentRequest true "部门信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin-config/departments [post]
func (c *AdminConfigController) CreateDepartment() {
	var req CreateDepartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	configService := c.Container.GetService("admin_config").(services.InterfaceAdminConfigService)
	department, err := configService.CreateDepartment(req.Name, req.FloorID)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, department)
}
