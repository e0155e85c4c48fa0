package controllers

import (
	"strconv"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceEmployeeController 定义员工控制器接口
type InterfaceEmployeeController interface {
	GetEmployees()
	GetEmployee()
	CreateEmployee()
}

// EmployeeController 处理员工相关的请求
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController 创建一个新的员工控制器
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateEmployeeRequest 表示创建员工档案的请求
type CreateEmployeeRequest struct {
	EmployeeCode   string `json:"employee_code" example:"EMP-1001"`
	Name           string `json:"name" binding:"required" example:"Alice Zhang"`
	Department     string `json:"department" binding:"required" example:"Engineering"`
	UserID         uint   `json:"user_id" binding:"required" example:"3"`
	PreferredShift string `json:"preferred_shift" example:"MORNING"`
}

// HandleEmployeeFunc 返回一个处理员工请求的Gin处理函数
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetEmployees 获取员工列表
// @Summary 获取员工列表
// @Description 获取员工列表，支持按部门过滤和分页
// @Tags Employee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param department query string false "部门名称"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /employees [get]
func (c *EmployeeController) GetEmployees() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employees, result, err := employeeService.GetAllEmployees(c.Ctx.Query("department"), models.PaginationQuery{
		PageNum:  page,
		PageSize: pageSize,
	})
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取员工列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
		"data":      employees,
	})
}

// 2. GetEmployee 获取单个员工详情
// @Summary 获取员工详情
// @Description 根据ID获取员工详细信息
// @Tags Employee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [get]
func (c *EmployeeController) GetEmployee() {
	employeeID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的员工ID")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.GetEmployeeByID(uint(employeeID))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, employee)
}

// 3. CreateEmployee 创建员工档案
// @Summary 创建员工档案
// @Description 为已有用户创建员工档案，工号缺省时自动生成
// @Tags Employee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body CreateEmployeeRequest true "员工信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [post]
func (c *EmployeeController) CreateEmployee() {
	var req CreateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.CreateEmployee(services.CreateEmployeeInput{
		EmployeeCode:   req.EmployeeCode,
		Name:           req.Name,
		Department:     req.Department,
		UserID:         req.UserID,
		PreferredShift: req.PreferredShift,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, employee)
}
