package controllers

import (
	"strconv"

	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAssignmentController 定义分配记录控制器接口
type InterfaceAssignmentController interface {
	GetAssignments()
	ReleaseAssignment()
}

// AssignmentController 处理分配记录相关的请求
type AssignmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAssignmentController 创建一个新的分配记录控制器
func NewAssignmentController(ctx *gin.Context, container *container.ServiceContainer) *AssignmentController {
	return &AssignmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAssignmentFunc 返回一个处理分配记录请求的Gin处理函数
func HandleAssignmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAssignmentController(ctx, container)

		switch method {
		case "getAssignments":
			controller.GetAssignments()
		case "releaseAssignment":
			controller.ReleaseAssignment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetAssignments 获取分配记录列表
// @Summary 获取分配记录列表
// @Description 获取分配记录列表，支持按员工工号、工位编号、操作人和日期区间过滤
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee_code query string false "员工工号"
// @Param desk_number query string false "工位编号"
// @Param assigned_by query string false "操作人姓名（模糊匹配）"
// @Param from_date query string false "分配日期下限 YYYY-MM-DD"
// @Param to_date query string false "分配日期上限 YYYY-MM-DD"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /assignments [get]
func (c *AssignmentController) GetAssignments() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))

	filter := services.AssignmentListFilter{
		EmployeeCode: c.Ctx.Query("employee_code"),
		DeskNumber:   c.Ctx.Query("desk_number"),
		AssignedBy:   c.Ctx.Query("assigned_by"),
		Page:         page,
		PageSize:     pageSize,
	}

	if raw := c.Ctx.Query("from_date"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			response.ParamError(c.Ctx, "无效的开始日期，格式应为YYYY-MM-DD")
			return
		}
		filter.FromDate = &parsed
	}
	if raw := c.Ctx.Query("to_date"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			response.ParamError(c.Ctx, "无效的结束日期，格式应为YYYY-MM-DD")
			return
		}
		filter.ToDate = &parsed
	}

	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)
	rows, total, err := assignmentService.ListAssignments(filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取分配记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      rows,
	})
}

// 2. ReleaseAssignment 释放一条分配
// @Summary 释放分配
// @Description 释放指定的分配记录；工位上无剩余活跃分配时降级为AVAILABLE
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分配记录ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/release [post]
func (c *AssignmentController) ReleaseAssignment() {
	assignmentID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的分配记录ID")
		return
	}

	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)
	if err := assignmentService.ReleaseAssignment(uint(assignmentID), getContextUserID(c.Ctx)); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
