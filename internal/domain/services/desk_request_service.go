package services

import (
	"errors"
	"fmt"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"
	"desk-management-service/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDeskRequestInput 员工提交工位申请的输入参数
type CreateDeskRequestInput struct {
	UserID   uint
	Shift    string
	FromDate time.Time
	ToDate   time.Time
	Note     string
}

// InterfaceDeskRequestService 定义工位申请服务接口
type InterfaceDeskRequestService interface {
	CreateRequest(input CreateDeskRequestInput) (*models.DeskRequest, error)
	GetRequestByID(id uint) (*models.DeskRequest, error)
	ListRequests(status string, pagination models.PaginationQuery) ([]models.DeskRequest, models.PaginationResult, error)
	ListRequestsForUser(userID uint) ([]models.DeskRequest, error)
}

// DeskRequestService 提供工位申请相关的服务
type DeskRequestService struct {
	DB           *gorm.DB
	Config       *config.Config
	Availability InterfaceAvailabilityService
	Settings     InterfaceSettingsService
}

// NewDeskRequestService 创建一个新的工位申请服务
func NewDeskRequestService(db *gorm.DB, cfg *config.Config, availability InterfaceAvailabilityService, settings InterfaceSettingsService) InterfaceDeskRequestService {
	return &DeskRequestService{
		DB:           db,
		Config:       cfg,
		Availability: availability,
		Settings:     settings,
	}
}

// 1. CreateRequest 创建工位申请
//
// 申请先以PENDING落库。若自动分配开关开启，在同一事务内尝试分配：
// 候选集为申请人部门所在楼层、归属该部门、状态非INACTIVE的工位，
// 由分配器按编号升序选出第一个空闲的。命中则创建TEMPORARY分配、
// 申请转APPROVED并绑定工位、工位转ASSIGNED并写状态历史
// （工位已是ASSIGNED时不重复写）；
// 无空闲工位或开关关闭时申请保持PENDING，留给管理员手动处理。
func (s *DeskRequestService) CreateRequest(input CreateDeskRequestInput) (*models.DeskRequest, error) {
	if !models.IsValidShift(input.Shift) {
		return nil, ErrInvalidShift
	}
	if input.ToDate.Before(input.FromDate) {
		return nil, ErrInvalidDateRange
	}

	var request *models.DeskRequest

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.Where("user_id = ?", input.UserID).First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		// 员工档案上的部门名必须能解析到部门配置
		var department models.Department
		if err := tx.Where("name = ?", employee.Department).First(&department).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentConfig
			}
			return err
		}

		request = &models.DeskRequest{
			ReferenceNo:  uuid.NewString(),
			EmployeeID:   employee.ID,
			DepartmentID: department.ID,
			Shift:        input.Shift,
			FromDate:     input.FromDate,
			ToDate:       input.ToDate,
			Note:         input.Note,
			Status:       models.RequestStatusPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		enabled, err := s.Settings.GetAutoAssignment()
		if err != nil {
			return err
		}
		if !enabled {
			return nil
		}

		// 候选集：部门所在楼层、归属该部门、未停用的工位
		var candidates []models.Desk
		if err := tx.Where("floor_id = ? AND department_id = ? AND current_status <> ?",
			department.FloorID, department.ID, models.DeskStatusInactive).
			Find(&candidates).Error; err != nil {
			return err
		}

		desk, err := s.Availability.WithTx(tx).FindAvailableDesk(candidates, input.Shift, input.FromDate, input.ToDate)
		if err != nil {
			return err
		}
		if desk == nil {
			logger.Info("工位申请 %s 无可用工位，保持待处理", request.ReferenceNo)
			return nil
		}

		assignment := models.DeskAssignment{
			DeskID:         desk.ID,
			EmployeeID:     employee.ID,
			AssignedBy:     input.UserID,
			AssignedDate:   input.FromDate,
			AssignmentType: models.AssignmentTypeTemporary,
			Shift:          input.Shift,
			StartDate:      input.FromDate,
			EndDate:        input.ToDate,
			IsAutoAssigned: true,
			Notes:          input.Note,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		request.Status = models.RequestStatusApproved
		request.AssignedDeskID = &desk.ID
		if err := tx.Model(request).Updates(map[string]interface{}{
			"status":           models.RequestStatusApproved,
			"assigned_desk_id": desk.ID,
		}).Error; err != nil {
			return err
		}

		// 工位已是ASSIGNED（如另一班次在用）时不重复写状态和历史
		if desk.CurrentStatus == models.DeskStatusAssigned {
			return nil
		}

		if err := tx.Model(&models.Desk{}).
			Where("id = ?", desk.ID).
			Update("current_status", models.DeskStatusAssigned).Error; err != nil {
			return err
		}

		history := models.DeskStatusHistory{
			DeskID:    desk.ID,
			OldStatus: desk.CurrentStatus,
			NewStatus: models.DeskStatusAssigned,
			ChangedBy: input.UserID,
			Reason:    fmt.Sprintf("Auto-assigned to %s (%s)", employee.Name, employee.EmployeeCode),
			ChangedAt: time.Now(),
		}
		return tx.Create(&history).Error
	})

	if err != nil {
		return nil, err
	}
	return request, nil
}

// 2. GetRequestByID 按ID获取申请
func (s *DeskRequestService) GetRequestByID(id uint) (*models.DeskRequest, error) {
	var request models.DeskRequest
	if err := s.DB.
		Preload("Employee").
		Preload("Department").
		Preload("AssignedDesk").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// 3. ListRequests 获取申请列表（管理端），支持按状态过滤
func (s *DeskRequestService) ListRequests(status string, pagination models.PaginationQuery) ([]models.DeskRequest, models.PaginationResult, error) {
	var requests []models.DeskRequest
	var total int64

	query := s.DB.Model(&models.DeskRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	offset := (pagination.PageNum - 1) * pagination.PageSize
	if err := query.
		Preload("Employee").
		Preload("AssignedDesk").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pagination.PageSize).
		Find(&requests).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	return requests, models.NewPaginationResult(int(total), pagination.PageNum, pagination.PageSize), nil
}

// 4. ListRequestsForUser 获取指定用户自己的申请列表
func (s *DeskRequestService) ListRequestsForUser(userID uint) ([]models.DeskRequest, error) {
	var employee models.Employee
	if err := s.DB.Where("user_id = ?", userID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	var requests []models.DeskRequest
	if err := s.DB.
		Preload("AssignedDesk").
		Where("employee_id = ?", employee.ID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
