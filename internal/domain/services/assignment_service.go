package services

import (
	"errors"
	"fmt"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignDeskInput 手动分配工位的输入参数
type AssignDeskInput struct {
	DeskID            uint
	EmployeeID        uint
	AssignmentType    string // PERMANENT / TEMPORARY
	Shift             string // MORNING / NIGHT
	StartDate         time.Time
	EndDate           time.Time
	AssignedBy        uint
	Notes             string
	AllowReassignment bool
	RequestID         uint // 关联的工位申请ID，0表示无
}

// AssignmentListFilter 分配记录列表的过滤条件
type AssignmentListFilter struct {
	EmployeeCode string
	DeskNumber   string
	AssignedBy   string // 按操作人姓名模糊匹配
	FromDate     *time.Time
	ToDate       *time.Time
	Page         int
	PageSize     int
}

// AssignmentRow 分配记录列表的联表行
type AssignmentRow struct {
	ID             uint       `json:"id"`
	DeskID         uint       `json:"desk_id"`
	DeskNumber     string     `json:"desk_number"`
	Floor          int        `json:"floor"`
	EmployeeID     uint       `json:"employee_id"`
	EmployeeCode   string     `json:"employee_code"`
	EmployeeName   string     `json:"employee_name"`
	Department     string     `json:"department"`
	AssignedByName string     `json:"assigned_by"`
	AssignedDate   time.Time  `json:"assigned_date"`
	AssignmentType string     `json:"assignment_type"`
	Shift          string     `json:"shift"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	ReleasedDate   *time.Time `json:"released_date"`
	CurrentStatus  string     `json:"current_status"`
}

// ReconcileReport 状态对账结果
type ReconcileReport struct {
	ReleasedAssignments int `json:"released_assignments"`
	UpdatedDesks        int `json:"updated_desks"`
}

// InterfaceAssignmentService 定义工位分配服务接口
type InterfaceAssignmentService interface {
	AssignDesk(input AssignDeskInput) (*models.DeskAssignment, error)
	ReleaseAssignment(assignmentID uint, releasedBy uint) error
	ListAssignments(filter AssignmentListFilter) ([]AssignmentRow, int64, error)
	ReconcileDeskStatuses(changedBy uint) (*ReconcileReport, error)
}

// AssignmentService 提供工位分配相关的服务
type AssignmentService struct {
	DB           *gorm.DB
	Config       *config.Config
	Availability InterfaceAvailabilityService
}

// NewAssignmentService 创建一个新的工位分配服务
func NewAssignmentService(db *gorm.DB, cfg *config.Config, availability InterfaceAvailabilityService) InterfaceAssignmentService {
	return &AssignmentService{
		DB:           db,
		Config:       cfg,
		Availability: availability,
	}
}

// 1. AssignDesk 把工位分配给员工
//
// 校验全部在写入之前完成；写入部分（释放冲突分配、释放员工旧分配、创建
// 新分配、更新工位状态、写状态历史、更新关联申请）在一个事务内提交，
// 任一步失败则整体回滚。事务内先对工位行加排它锁，避免并发请求在
// "检查重叠→插入"之间交错产生双重预订。
func (s *AssignmentService) AssignDesk(input AssignDeskInput) (*models.DeskAssignment, error) {
	if !models.IsValidAssignmentType(input.AssignmentType) {
		return nil, ErrInvalidAssignmentType
	}
	if !models.IsValidShift(input.Shift) {
		return nil, ErrInvalidShift
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	var created *models.DeskAssignment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 锁定目标工位
		var desk models.Desk
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&desk, input.DeskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeskNotFound
			}
			return err
		}

		// 维护中或停用的工位不能分配
		if desk.CurrentStatus == models.DeskStatusMaintenance || desk.CurrentStatus == models.DeskStatusInactive {
			return ErrDeskUnavailable
		}

		var employee models.Employee
		if err := tx.First(&employee, input.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		// 检查同工位同班次的时段冲突
		overlaps, err := s.Availability.WithTx(tx).FindOverlaps(desk.ID, input.Shift, input.StartDate, input.EndDate, 0)
		if err != nil {
			return err
		}

		today := todayDate()

		if len(overlaps) > 0 {
			if !input.AllowReassignment {
				return newConflictError(desk.DeskNumber, overlaps)
			}
			// 改签：释放所有冲突的分配，视为隐式转移
			for i := range overlaps {
				if err := tx.Model(&models.DeskAssignment{}).
					Where("id = ?", overlaps[i].ID).
					Update("released_date", today).Error; err != nil {
					return err
				}
			}
		}

		// 员工同一时间最多持有一个活跃分配：释放其在任何工位上的旧分配
		var actives []models.DeskAssignment
		if err := tx.Where("employee_id = ? AND released_date IS NULL", employee.ID).Find(&actives).Error; err != nil {
			return err
		}
		for _, old := range actives {
			if err := tx.Model(&models.DeskAssignment{}).
				Where("id = ?", old.ID).
				Update("released_date", today).Error; err != nil {
				return err
			}
			if old.DeskID == desk.ID {
				continue
			}
			var oldDesk models.Desk
			if err := tx.First(&oldDesk, old.DeskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if oldDesk.CurrentStatus == models.DeskStatusAssigned {
				if err := tx.Model(&oldDesk).
					Update("current_status", models.DeskStatusAvailable).Error; err != nil {
					return err
				}
			}
		}

		assignment := &models.DeskAssignment{
			DeskID:         desk.ID,
			EmployeeID:     employee.ID,
			AssignedBy:     input.AssignedBy,
			AssignedDate:   today,
			AssignmentType: input.AssignmentType,
			Shift:          input.Shift,
			StartDate:      input.StartDate,
			EndDate:        input.EndDate,
			IsAutoAssigned: false,
			Notes:          input.Notes,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		// 关联的工位申请转为APPROVED并绑定工位
		if input.RequestID != 0 {
			result := tx.Model(&models.DeskRequest{}).
				Where("id = ?", input.RequestID).
				Updates(map[string]interface{}{
					"status":           models.RequestStatusApproved,
					"assigned_desk_id": desk.ID,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRequestNotFound
			}
		}

		// 更新工位状态并写入状态历史
		oldStatus := desk.CurrentStatus
		if err := tx.Model(&desk).
			Update("current_status", models.DeskStatusAssigned).Error; err != nil {
			return err
		}

		history := models.DeskStatusHistory{
			DeskID:    desk.ID,
			OldStatus: oldStatus,
			NewStatus: models.DeskStatusAssigned,
			ChangedBy: input.AssignedBy,
			Reason:    fmt.Sprintf("Assigned to %s (%s)", employee.Name, employee.EmployeeCode),
			Notes:     input.Notes,
			ChangedAt: time.Now(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		created = assignment
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// 2. ReleaseAssignment 释放一条分配
//
// 释放后若该工位上已无活跃分配且状态仍为ASSIGNED，则降级为AVAILABLE
// 并写入状态历史。对已释放的分配重复调用是无副作用的。
func (s *AssignmentService) ReleaseAssignment(assignmentID uint, releasedBy uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var assignment models.DeskAssignment
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}

		if assignment.ReleasedDate != nil {
			return nil
		}

		today := todayDate()
		if err := tx.Model(&assignment).Update("released_date", today).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.DeskAssignment{}).
			Where("desk_id = ? AND released_date IS NULL", assignment.DeskID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		var desk models.Desk
		if err := tx.First(&desk, assignment.DeskID).Error; err != nil {
			return err
		}
		if desk.CurrentStatus != models.DeskStatusAssigned {
			return nil
		}

		if err := tx.Model(&desk).
			Update("current_status", models.DeskStatusAvailable).Error; err != nil {
			return err
		}

		history := models.DeskStatusHistory{
			DeskID:    desk.ID,
			OldStatus: models.DeskStatusAssigned,
			NewStatus: models.DeskStatusAvailable,
			ChangedBy: releasedBy,
			Reason:    "Assignment released",
			ChangedAt: time.Now(),
		}
		return tx.Create(&history).Error
	})
}

// 3. ListAssignments 查询分配记录列表（联表，支持过滤和分页）
func (s *AssignmentService) ListAssignments(filter AssignmentListFilter) ([]AssignmentRow, int64, error) {
	query := s.DB.Table("desk_assignments").
		Select("desk_assignments.id, desks.id AS desk_id, desks.desk_number, desks.floor, " +
			"employees.id AS employee_id, employees.employee_code, employees.name AS employee_name, employees.department, " +
			"users.full_name AS assigned_by_name, desk_assignments.assigned_date, desk_assignments.assignment_type, " +
			"desk_assignments.shift, desk_assignments.start_date, desk_assignments.end_date, " +
			"desk_assignments.released_date, desks.current_status").
		Joins("JOIN desks ON desk_assignments.desk_id = desks.id").
		Joins("JOIN employees ON desk_assignments.employee_id = employees.id").
		Joins("JOIN users ON desk_assignments.assigned_by = users.id")

	if filter.EmployeeCode != "" {
		query = query.Where("employees.employee_code = ?", filter.EmployeeCode)
	}
	if filter.DeskNumber != "" {
		query = query.Where("desks.desk_number = ?", filter.DeskNumber)
	}
	if filter.AssignedBy != "" {
		query = query.Where("users.full_name LIKE ?", "%"+filter.AssignedBy+"%")
	}
	if filter.FromDate != nil {
		query = query.Where("desk_assignments.assigned_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("desk_assignments.assigned_date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	pageSize := filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	var rows []AssignmentRow
	if err := query.
		Order("desk_assignments.assigned_date DESC, desk_assignments.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// 4. ReconcileDeskStatuses 对账：让工位状态缓存与活跃分配集合重新一致
//
// 对应数据清理流程：先保证每个员工、每个工位最多一条活跃分配（保留最新
// 的一条，其余释放），再按活跃分配集合修正ASSIGNED/AVAILABLE状态，每次
// 状态翻转写一条历史。
func (s *AssignmentService) ReconcileDeskStatuses(changedBy uint) (*ReconcileReport, error) {
	report := &ReconcileReport{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		today := todayDate()

		// 每个员工最多一条活跃分配
		var employees []models.Employee
		if err := tx.Find(&employees).Error; err != nil {
			return err
		}
		for _, emp := range employees {
			var actives []models.DeskAssignment
			if err := tx.Where("employee_id = ? AND released_date IS NULL", emp.ID).
				Order("assigned_date DESC, created_at DESC, id DESC").
				Find(&actives).Error; err != nil {
				return err
			}
			for _, extra := range activesTail(actives) {
				if err := tx.Model(&models.DeskAssignment{}).
					Where("id = ?", extra.ID).
					Update("released_date", today).Error; err != nil {
					return err
				}
				report.ReleasedAssignments++
			}
		}

		// 每个工位、每个班次最多一条活跃分配（保留最新）
		var desks []models.Desk
		if err := tx.Find(&desks).Error; err != nil {
			return err
		}
		for _, d := range desks {
			for _, shift := range []string{models.ShiftMorning, models.ShiftNight} {
				var actives []models.DeskAssignment
				if err := tx.Where("desk_id = ? AND shift = ? AND released_date IS NULL", d.ID, shift).
					Order("assigned_date DESC, created_at DESC, id DESC").
					Find(&actives).Error; err != nil {
					return err
				}
				for _, extra := range activesTail(actives) {
					if err := tx.Model(&models.DeskAssignment{}).
						Where("id = ?", extra.ID).
						Update("released_date", today).Error; err != nil {
						return err
					}
					report.ReleasedAssignments++
				}
			}
		}

		// 按活跃分配集合修正状态缓存
		for _, d := range desks {
			var activeCount int64
			if err := tx.Model(&models.DeskAssignment{}).
				Where("desk_id = ? AND released_date IS NULL", d.ID).
				Count(&activeCount).Error; err != nil {
				return err
			}

			var newStatus string
			if activeCount > 0 && d.CurrentStatus != models.DeskStatusAssigned {
				newStatus = models.DeskStatusAssigned
			} else if activeCount == 0 && d.CurrentStatus == models.DeskStatusAssigned {
				newStatus = models.DeskStatusAvailable
			} else {
				continue
			}

			if err := tx.Model(&models.Desk{}).
				Where("id = ?", d.ID).
				Update("current_status", newStatus).Error; err != nil {
				return err
			}

			history := models.DeskStatusHistory{
				DeskID:    d.ID,
				OldStatus: d.CurrentStatus,
				NewStatus: newStatus,
				ChangedBy: changedBy,
				Reason:    "Status reconciliation",
				ChangedAt: time.Now(),
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
			report.UpdatedDesks++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return report, nil
}

// newConflictError 根据重叠的分配构造冲突错误
func newConflictError(deskNumber string, overlaps []models.DeskAssignment) *ConflictError {
	details := make([]OverlapDetail, 0, len(overlaps))
	for _, o := range overlaps {
		detail := OverlapDetail{
			Shift:     o.Shift,
			StartDate: o.StartDate,
			EndDate:   o.EndDate,
		}
		if o.Employee != nil {
			detail.EmployeeName = o.Employee.Name
			detail.EmployeeCode = o.Employee.EmployeeCode
		}
		details = append(details, detail)
	}
	return &ConflictError{DeskNumber: deskNumber, Overlaps: details}
}

// activesTail 返回除第一条（最新）之外的分配
func activesTail(actives []models.DeskAssignment) []models.DeskAssignment {
	if len(actives) <= 1 {
		return nil
	}
	return actives[1:]
}

// todayDate 返回当天零点的日期值
func todayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
