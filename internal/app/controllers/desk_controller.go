package controllers

import (
	"strconv"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceDeskController 定义工位控制器接口
type InterfaceDeskController interface {
	GetDesks()
	GetDesk()
	CreateDesk()
	AssignDesk()
	UpdateDeskStatus()
	GetDeskHistory()
	DeleteDesk()
	ReconcileStatuses()
}

// DeskController 处理工位相关的请求
type DeskController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeskController 创建一个新的工位控制器
func NewDeskController(ctx *gin.Context, container *container.ServiceContainer) *DeskController {
	return &DeskController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateDeskRequest 表示创建工位请求
type CreateDeskRequest struct {
	DeskNumber   string `json:"desk_number" binding:"required" example:"205"`
	FloorID      uint   `json:"floor_id" binding:"required" example:"2"`
	DepartmentID *uint  `json:"department_id" example:"1"`
	Location     string `json:"location" example:"东侧靠窗"`
}

// AssignDeskRequest 表示手动分配工位请求
type AssignDeskRequest struct {
	EmployeeID        uint   `json:"employee_id" binding:"required" example:"3"`
	AssignmentType    string `json:"assignment_type" binding:"required" example:"PERMANENT"`
	Shift             string `json:"shift" binding:"required" example:"MORNING"`
	StartDate         string `json:"start_date" binding:"required" example:"2026-09-01"`
	EndDate           string `json:"end_date" binding:"required" example:"2026-12-31"`
	Notes             string `json:"notes" example:"项目组搬迁"`
	AllowReassignment bool   `json:"allow_reassignment" example:"false"`
	RequestID         uint   `json:"request_id" example:"0"`
}

// UpdateDeskStatusRequest 表示按编号更新工位状态的请求
type UpdateDeskStatusRequest struct {
	NewStatus              string `json:"new_status" binding:"required" example:"MAINTENANCE"`
	Reason                 string `json:"reason" example:"显示器故障"`
	Notes                  string `json:"notes" example:"已报修"`
	ExpectedResolutionDate string `json:"expected_resolution_date" example:"2026-09-10"`
}

// HandleDeskFunc 返回一个处理工位请求的Gin处理函数
func HandleDeskFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeskController(ctx, container)

		switch method {
		case "getDesks":
			controller.GetDesks()
		case "getDesk":
			controller.GetDesk()
		case "createDesk":
			controller.CreateDesk()
		case "assignDesk":
			controller.AssignDesk()
		case "updateDeskStatus":
			controller.UpdateDeskStatus()
		case "getDeskHistory":
			controller.GetDeskHistory()
		case "deleteDesk":
			controller.DeleteDesk()
		case "reconcileStatuses":
			controller.ReconcileStatuses()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetDesks 获取工位列表
// @Summary 获取工位列表
// @Description 获取工位列表，支持按状态、楼层过滤和分页
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "工位状态 AVAILABLE/ASSIGNED/MAINTENANCE/INACTIVE"
// @Param floor query int false "楼层号"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /desks [get]
func (c *DeskController) GetDesks() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	status := c.Ctx.Query("status")
	if status != "" && !models.IsValidDeskStatus(status) {
		response.ParamError(c.Ctx, "无效的工位状态")
		return
	}
	floor, _ := strconv.Atoi(c.Ctx.DefaultQuery("floor", "0"))

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	desks, result, err := deskService.GetAllDesks(status, floor, models.PaginationQuery{
		PageNum:  page,
		PageSize: pageSize,
	})
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取工位列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       result.Total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (result.Total + pageSize - 1) / pageSize,
		"data":        desks,
	})
}

// 2. GetDesk 获取单个工位详情
// @Summary 获取工位详情
// @Description 根据ID获取工位详细信息
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "工位ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /desks/{id} [get]
func (c *DeskController) GetDesk() {
	deskID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的工位ID")
		return
	}

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	desk, err := deskService.GetDeskByID(uint(deskID))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, desk)
}

// 3. CreateDesk 创建新工位
// @Summary 创建工位
// @Description 创建一个新的工位，初始状态为AVAILABLE
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param desk body CreateDeskRequest true "工位信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /desks [post]
func (c *DeskController) CreateDesk() {
	var req CreateDeskRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	desk, err := deskService.CreateDesk(services.CreateDeskInput{
		DeskNumber:   req.DeskNumber,
		FloorID:      req.FloorID,
		DepartmentID: req.DepartmentID,
		Location:     req.Location,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, desk)
}

// 4. AssignDesk 把工位分配给员工
// @Summary 分配工位
// @Description 把指定工位分配给员工；时段冲突时返回409和冲突明细，带allow_reassignment可改签
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "工位ID"
// @Param assignment body AssignDeskRequest true "分配信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "工位在请求时段已被占用"
// @Router /desks/{id}/assign [post]
func (c *DeskController) AssignDesk() {
	deskID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的工位ID")
		return
	}

	var req AssignDeskRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		response.ParamError(c.Ctx, "无效的开始日期，格式应为YYYY-MM-DD")
		return
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		response.ParamError(c.Ctx, "无效的结束日期，格式应为YYYY-MM-DD")
		return
	}

	userID := getContextUserID(c.Ctx)

	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)
	assignment, err := assignmentService.AssignDesk(services.AssignDeskInput{
		DeskID:            uint(deskID),
		EmployeeID:        req.EmployeeID,
		AssignmentType:    req.AssignmentType,
		Shift:             req.Shift,
		StartDate:         startDate,
		EndDate:           endDate,
		AssignedBy:        userID,
		Notes:             req.Notes,
		AllowReassignment: req.AllowReassignment,
		RequestID:         req.RequestID,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, assignment)
}

// 5. UpdateDeskStatus 按工位编号更新状态
// @Summary 更新工位状态
// @Description 按工位编号更新状态并记录状态历史
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param desk_number path string true "工位编号"
// @Param status body UpdateDeskStatusRequest true "状态信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /desks/{desk_number}/status [put]
func (c *DeskController) UpdateDeskStatus() {
	deskNumber := c.Ctx.Param("desk_number")

	var req UpdateDeskStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	var expected *time.Time
	if req.ExpectedResolutionDate != "" {
		parsed, ok := parseDate(req.ExpectedResolutionDate)
		if !ok {
			response.ParamError(c.Ctx, "无效的预计恢复日期，格式应为YYYY-MM-DD")
			return
		}
		expected = &parsed
	}

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	desk, err := deskService.UpdateStatusByNumber(services.UpdateDeskStatusInput{
		DeskNumber:             deskNumber,
		NewStatus:              req.NewStatus,
		Reason:                 req.Reason,
		Notes:                  req.Notes,
		ExpectedResolutionDate: expected,
		ChangedBy:              getContextUserID(c.Ctx),
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, desk)
}

// 6. GetDeskHistory 获取工位的状态历史
// @Summary 获取工位状态历史
// @Description 按工位编号获取状态变更历史，最新在前
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param desk_number path string true "工位编号"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /desks/{desk_number}/history [get]
func (c *DeskController) GetDeskHistory() {
	deskNumber := c.Ctx.Param("desk_number")

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	history, err := deskService.GetDeskHistory(deskNumber)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"desk_number": deskNumber,
		"history":     history,
	})
}

// 7. DeleteDesk 删除工位
// @Summary 删除工位
// @Description 删除指定工位，仍有活跃分配的工位不允许删除
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "工位ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /desks/{id} [delete]
func (c *DeskController) DeleteDesk() {
	deskID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的工位ID")
		return
	}

	deskService := c.Container.GetService("desk").(services.InterfaceDeskService)
	if err := deskService.DeleteDesk(uint(deskID)); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// 8. ReconcileStatuses 工位状态对账
// @Summary 工位状态对账
// @Description 释放重复的活跃分配并让工位状态与活跃分配集合重新一致
// @Tags Desk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /desks/reconcile [post]
func (c *DeskController) ReconcileStatuses() {
	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)
	report, err := assignmentService.ReconcileDeskStatuses(getContextUserID(c.Ctx))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "状态对账失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, report)
}
