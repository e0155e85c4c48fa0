package services

import (
	"errors"
	"fmt"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"
	"desk-management-service/pkg/utils"

	"gorm.io/gorm"
)

// CreateDeskInput 创建工位的输入参数
type CreateDeskInput struct {
	DeskNumber   string
	FloorID      uint
	DepartmentID *uint
	Location     string
}

// UpdateDeskStatusInput 按工位编号更新状态的输入参数
type UpdateDeskStatusInput struct {
	DeskNumber             string
	NewStatus              string
	Reason                 string
	Notes                  string
	ExpectedResolutionDate *time.Time
	ChangedBy              uint
}

// DeskHistoryRow 工位状态历史的联表行
type DeskHistoryRow struct {
	ID                     uint       `json:"id"`
	OldStatus              string     `json:"old_status"`
	NewStatus              string     `json:"new_status"`
	ChangedByName          string     `json:"changed_by"`
	Reason                 string     `json:"reason"`
	Notes                  string     `json:"notes"`
	ExpectedResolutionDate *time.Time `json:"expected_resolution_date"`
	ChangedAt              time.Time  `json:"changed_at"`
}

// InterfaceDeskService 定义工位服务接口
type InterfaceDeskService interface {
	GetAllDesks(status string, floor int, pagination models.PaginationQuery) ([]models.Desk, models.PaginationResult, error)
	GetDeskByID(id uint) (*models.Desk, error)
	GetDeskByNumber(deskNumber string) (*models.Desk, error)
	CreateDesk(input CreateDeskInput) (*models.Desk, error)
	UpdateStatusByNumber(input UpdateDeskStatusInput) (*models.Desk, error)
	GetDeskHistory(deskNumber string) ([]DeskHistoryRow, error)
	DeleteDesk(id uint) error
}

// DeskService 提供工位相关的服务
type DeskService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDeskService 创建一个新的工位服务
func NewDeskService(db *gorm.DB, cfg *config.Config) InterfaceDeskService {
	return &DeskService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllDesks 获取工位列表，支持按状态、楼层过滤和分页
func (s *DeskService) GetAllDesks(status string, floor int, pagination models.PaginationQuery) ([]models.Desk, models.PaginationResult, error) {
	var desks []models.Desk
	var total int64

	query := s.DB.Model(&models.Desk{})
	if status != "" {
		query = query.Where("current_status = ?", status)
	}
	if floor > 0 {
		query = query.Where("floor = ?", floor)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	offset := (pagination.PageNum - 1) * pagination.PageSize
	if err := query.
		Preload("Department").
		Order("desk_number").
		Offset(offset).
		Limit(pagination.PageSize).
		Find(&desks).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	return desks, models.NewPaginationResult(int(total), pagination.PageNum, pagination.PageSize), nil
}

// 2. GetDeskByID 按ID获取工位
func (s *DeskService) GetDeskByID(id uint) (*models.Desk, error) {
	var desk models.Desk
	if err := s.DB.Preload("Department").First(&desk, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeskNotFound
		}
		return nil, err
	}
	return &desk, nil
}

// 3. GetDeskByNumber 按工位编号获取工位
func (s *DeskService) GetDeskByNumber(deskNumber string) (*models.Desk, error) {
	var desk models.Desk
	if err := s.DB.Where("desk_number = ?", deskNumber).First(&desk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeskNotFound
		}
		return nil, err
	}
	return &desk, nil
}

// 4. CreateDesk 创建工位
//
// 楼层必须已存在；工位编号全局唯一。desk.floor 冗余存储楼层号，
// 与 floor_id 一起写入。
func (s *DeskService) CreateDesk(input CreateDeskInput) (*models.Desk, error) {
	var floor models.Floor
	if err := s.DB.First(&floor, input.FloorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Desk{}).
		Where("desk_number = ?", input.DeskNumber).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDeskAlreadyExist
	}

	if input.DepartmentID != nil {
		var dept models.Department
		if err := s.DB.First(&dept, *input.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}

	desk := &models.Desk{
		DeskNumber:    input.DeskNumber,
		Floor:         floor.Number,
		FloorID:       floor.ID,
		DepartmentID:  input.DepartmentID,
		Location:      input.Location,
		CurrentStatus: models.DeskStatusAvailable,
	}
	if err := s.DB.Create(desk).Error; err != nil {
		return nil, err
	}
	return desk, nil
}

// 5. UpdateStatusByNumber 按工位编号更新状态并写入状态历史
//
// 工位编号必须能通过编号编码规则解析出楼层；解析出的楼层回写到工位上，
// 修正历史数据中楼层字段的偏差。状态变更和历史写入在同一事务内完成。
func (s *DeskService) UpdateStatusByNumber(input UpdateDeskStatusInput) (*models.Desk, error) {
	if !models.IsValidDeskStatus(input.NewStatus) {
		return nil, ErrInvalidDeskStatus
	}

	floorNumber, _, err := utils.ExtractFloorAndIndex(input.DeskNumber)
	if err != nil {
		return nil, ErrInvalidDeskNumber
	}

	reason := input.Reason
	if reason == "" {
		reason = "Manual status update"
	}

	var updated *models.Desk

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var desk models.Desk
		if err := tx.Where("desk_number = ?", input.DeskNumber).First(&desk).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeskNotFound
			}
			return err
		}

		oldStatus := desk.CurrentStatus
		if err := tx.Model(&desk).Updates(map[string]interface{}{
			"current_status": input.NewStatus,
			"floor":          floorNumber,
		}).Error; err != nil {
			return err
		}

		history := models.DeskStatusHistory{
			DeskID:                 desk.ID,
			OldStatus:              oldStatus,
			NewStatus:              input.NewStatus,
			ChangedBy:              input.ChangedBy,
			Reason:                 reason,
			Notes:                  input.Notes,
			ExpectedResolutionDate: input.ExpectedResolutionDate,
			ChangedAt:              time.Now(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		desk.CurrentStatus = input.NewStatus
		desk.Floor = floorNumber
		updated = &desk
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

// 6. GetDeskHistory 获取工位的状态历史（最新在前）
func (s *DeskService) GetDeskHistory(deskNumber string) ([]DeskHistoryRow, error) {
	var desk models.Desk
	if err := s.DB.Where("desk_number = ?", deskNumber).First(&desk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeskNotFound
		}
		return nil, err
	}

	var rows []DeskHistoryRow
	if err := s.DB.Table("desk_status_histories").
		Select("desk_status_histories.id, desk_status_histories.old_status, desk_status_histories.new_status, "+
			"users.full_name AS changed_by_name, desk_status_histories.reason, desk_status_histories.notes, "+
			"desk_status_histories.expected_resolution_date, desk_status_histories.changed_at").
		Joins("JOIN users ON desk_status_histories.changed_by = users.id").
		Where("desk_status_histories.desk_id = ?", desk.ID).
		Order("desk_status_histories.changed_at DESC, desk_status_histories.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// 7. DeleteDesk 删除工位
//
// 仍有活跃分配的工位不允许删除。
func (s *DeskService) DeleteDesk(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var desk models.Desk
		if err := tx.First(&desk, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeskNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.DeskAssignment{}).
			Where("desk_id = ? AND released_date IS NULL", desk.ID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: desk %s has active assignments", ErrDeskUnavailable, desk.DeskNumber)
		}

		return tx.Delete(&desk).Error
	})
}
