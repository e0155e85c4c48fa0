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

// InterfaceDeskRequestController 定义工位申请控制器接口
type InterfaceDeskRequestController interface {
	CreateRequest()
	GetMyRequests()
	GetRequests()
	GetRequest()
}

// DeskRequestController 处理工位申请相关的请求
type DeskRequestController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeskRequestController 创建一个新的工位申请控制器
func NewDeskRequestController(ctx *gin.Context, container *container.ServiceContainer) *DeskRequestController {
	return &DeskRequestController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeskRequestCreateRequest 表示提交工位申请的请求体
type DeskRequestCreateRequest struct {
	Shift    string `json:"shift" binding:"required" example:"MORNING"`
	FromDate string `json:"from_date" binding:"required" example:"2026-09-01"`
	ToDate   string `json:"to_date" binding:"required" example:"2026-09-30"`
	Note     string `json:"note" example:"到岗办公"`
}

// HandleDeskRequestFunc 返回一个处理工位申请请求的Gin处理函数
func HandleDeskRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeskRequestController(ctx, container)

		switch method {
		case "createRequest":
			controller.CreateRequest()
		case "getMyRequests":
			controller.GetMyRequests()
		case "getRequests":
			controller.GetRequests()
		case "getRequest":
			controller.GetRequest()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. CreateRequest 提交工位申请
// @Summary 提交工位申请
// @Description 员工提交工位申请；自动分配开启且有空闲工位时立即批准并分配
// @Tags DeskRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeskRequestCreateRequest true "申请信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /desk-requests [post]
func (c *DeskRequestController) CreateRequest() {
	var req DeskRequestCreateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	fromDate, ok := parseDate(req.FromDate)
	if !ok {
		response.ParamError(c.Ctx, "无效的开始日期，格式应为YYYY-MM-DD")
		return
	}
	toDate, ok := parseDate(req.ToDate)
	if !ok {
		response.ParamError(c.Ctx, "无效的结束日期，格式应为YYYY-MM-DD")
		return
	}

	requestService := c.Container.GetService("desk_request").(services.InterfaceDeskRequestService)
	request, err := requestService.CreateRequest(services.CreateDeskRequestInput{
		UserID:   getContextUserID(c.Ctx),
		Shift:    req.Shift,
		FromDate: fromDate,
		ToDate:   toDate,
		Note:     req.Note,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// 2. GetMyRequests 获取当前用户自己的申请列表
// @Summary 获取我的申请
// @Description 获取当前登录员工提交的所有工位申请
// @Tags DeskRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /desk-requests/me [get]
func (c *DeskRequestController) GetMyRequests() {
	requestService := c.Container.GetService("desk_request").(services.InterfaceDeskRequestService)
	requests, err := requestService.ListRequestsForUser(getContextUserID(c.Ctx))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, requests)
}

// 3. GetRequests 获取申请列表（管理端）
// @Summary 获取申请列表
// @Description 获取全部工位申请，支持按状态过滤和分页
// @Tags DeskRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "申请状态 PENDING/APPROVED/REJECTED"
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /desk-requests [get]
func (c *DeskRequestController) GetRequests() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	status := c.Ctx.Query("status")
	if status != "" &&
		status != models.RequestStatusPending &&
		status != models.RequestStatusApproved &&
		status != models.RequestStatusRejected {
		response.ParamError(c.Ctx, "无效的申请状态")
		return
	}

	requestService := c.Container.GetService("desk_request").(services.InterfaceDeskRequestService)
	requests, result, err := requestService.ListRequests(status, models.PaginationQuery{
		PageNum:  page,
		PageSize: pageSize,
	})
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取申请列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
		"data":      requests,
	})
}

// 4. GetRequest 获取单个申请详情
// @Summary 获取申请详情
// @Description 根据ID获取工位申请详细信息
// @Tags DeskRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /desk-requests/{id} [get]
func (c *DeskRequestController) GetRequest() {
	requestID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的申请ID")
		return
	}

	requestService := c.Container.GetService("desk_request").(services.InterfaceDeskRequestService)
	request, err := requestService.GetRequestByID(uint(requestID))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}
