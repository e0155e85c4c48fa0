package controllers

import (
	"errors"
	"time"

	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// failWithServiceError 把服务层错误映射为统一的错误码响应
//
// 冲突错误（409）带上重叠明细，便于管理员决定是否改签。
// 未识别的错误一律按数据库错误处理。
func failWithServiceError(ctx *gin.Context, err error) {
	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		response.FailWithMessage(ctx, code.ErrDeskConflict, conflict.Error(), gin.H{
			"desk_number": conflict.DeskNumber,
			"overlaps":    conflict.Overlaps,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.FailWithMessage(ctx, code.ErrUserNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrUserAlreadyExist):
		response.FailWithMessage(ctx, code.ErrUserAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrUserPasswordIncorrect):
		response.FailWithMessage(ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
	case errors.Is(err, services.ErrUserInactive):
		response.FailWithMessage(ctx, code.ErrUserInactive, err.Error(), nil)
	case errors.Is(err, services.ErrDeskNotFound):
		response.FailWithMessage(ctx, code.ErrDeskNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrDeskAlreadyExist):
		response.FailWithMessage(ctx, code.ErrDeskAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrDeskUnavailable):
		response.FailWithMessage(ctx, code.ErrDeskUnavailable, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidDeskStatus):
		response.FailWithMessage(ctx, code.ErrDeskStatusInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidDeskNumber):
		response.FailWithMessage(ctx, code.ErrDeskNumberInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrEmployeeNotFound):
		response.FailWithMessage(ctx, code.ErrEmployeeNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrEmployeeAlreadyExist):
		response.FailWithMessage(ctx, code.ErrEmployeeAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrDepartmentConfig):
		response.FailWithMessage(ctx, code.ErrDepartmentConfig, err.Error(), nil)
	case errors.Is(err, services.ErrAssignmentNotFound):
		response.FailWithMessage(ctx, code.ErrRecordNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidDateRange):
		response.FailWithMessage(ctx, code.ErrInvalidDateRange, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidShift):
		response.FailWithMessage(ctx, code.ErrInvalidShift, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidAssignmentType):
		response.FailWithMessage(ctx, code.ErrValidation, err.Error(), nil)
	case errors.Is(err, services.ErrRequestNotFound):
		response.FailWithMessage(ctx, code.ErrRequestNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrFloorNotFound):
		response.FailWithMessage(ctx, code.ErrFloorNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrFloorAlreadyExist):
		response.FailWithMessage(ctx, code.ErrFloorAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrDepartmentNotFound):
		response.FailWithMessage(ctx, code.ErrDepartmentNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrFloorOccupied):
		response.FailWithMessage(ctx, code.ErrFloorOccupied, err.Error(), nil)
	default:
		response.FailWithMessage(ctx, code.ErrDatabase, err.Error(), nil)
	}
}

// getContextUserID 从认证中间件写入的上下文中读取当前用户ID
func getContextUserID(ctx *gin.Context) uint {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	case int:
		return uint(v)
	default:
		return 0
	}
}

// parseDate 解析 YYYY-MM-DD 格式的日期参数
func parseDate(value string) (time.Time, bool) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
