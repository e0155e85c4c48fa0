package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// 业务校验错误，全部在任何写入发生之前检出，可安全直接返回给调用方
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExist      = errors.New("user already exists")
	ErrUserPasswordIncorrect = errors.New("incorrect password")
	ErrUserInactive          = errors.New("user is inactive")

	ErrDeskNotFound      = errors.New("desk not found")
	ErrDeskAlreadyExist  = errors.New("desk number already exists")
	ErrDeskUnavailable   = errors.New("desk status does not allow assignment")
	ErrInvalidDeskStatus = errors.New("invalid desk status")
	ErrInvalidDeskNumber = errors.New("invalid desk number")

	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeAlreadyExist = errors.New("employee code already exists")
	ErrDepartmentConfig     = errors.New("department configuration not found for employee")

	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
	ErrInvalidShift          = errors.New("invalid shift, use MORNING or NIGHT")
	ErrInvalidAssignmentType = errors.New("invalid assignment type, use PERMANENT or TEMPORARY")

	ErrRequestNotFound = errors.New("desk request not found")

	ErrFloorNotFound      = errors.New("floor not found")
	ErrFloorAlreadyExist  = errors.New("floor number already exists")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrFloorOccupied      = errors.New("floor already has a department")
)

// OverlapDetail 描述一条与新预订时段冲突的活跃分配
type OverlapDetail struct {
	EmployeeName string    `json:"employee_name"`
	EmployeeCode string    `json:"employee_code"`
	Shift        string    `json:"shift"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// ConflictError 表示工位在请求的班次/日期区间内已被占用
//
// Detail 列出每一条冲突的分配（员工、班次、日期区间），供运维排查。
type ConflictError struct {
	DeskNumber string          `json:"desk_number"`
	Overlaps   []OverlapDetail `json:"overlaps"`
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Overlaps))
	for _, o := range e.Overlaps {
		parts = append(parts, fmt.Sprintf("%s (%s) %s %s~%s",
			o.EmployeeName, o.EmployeeCode, o.Shift,
			o.StartDate.Format("2006-01-02"), o.EndDate.Format("2006-01-02")))
	}
	return fmt.Sprintf("desk %s is already booked for the requested period: %s",
		e.DeskNumber, strings.Join(parts, "; "))
}
