package services

import (
	"sort"
	"strconv"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceAvailabilityService 定义工位可用性检查与分配器服务接口
type InterfaceAvailabilityService interface {
	// FindOverlaps 查找指定工位、班次在闭区间[start, end]内重叠的活跃分配。
	// excludeAssignmentID 不为0时排除该分配本身（改签场景）。
	FindOverlaps(deskID uint, shift string, start, end time.Time, excludeAssignmentID uint) ([]models.DeskAssignment, error)
	// HasConflict 判断是否存在重叠的活跃分配
	HasConflict(deskID uint, shift string, start, end time.Time) (bool, error)
	// FindAvailableDesk 在候选工位中按工位编号升序选出第一个无冲突的工位，
	// 找不到时返回nil（不是错误）
	FindAvailableDesk(candidates []models.Desk, shift string, start, end time.Time) (*models.Desk, error)
	// WithTx 返回绑定到指定事务的服务实例
	WithTx(tx *gorm.DB) InterfaceAvailabilityService
}

// AvailabilityService 提供工位可用性检查和确定性分配
type AvailabilityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAvailabilityService 创建一个新的可用性服务
func NewAvailabilityService(db *gorm.DB, cfg *config.Config) InterfaceAvailabilityService {
	return &AvailabilityService{
		DB:     db,
		Config: cfg,
	}
}

// WithTx 返回绑定到指定事务的服务实例，便于在调用方事务内做检查
func (s *AvailabilityService) WithTx(tx *gorm.DB) InterfaceAvailabilityService {
	return &AvailabilityService{DB: tx, Config: s.Config}
}

// 1. FindOverlaps 查找重叠的活跃分配
//
// 重叠判定为闭区间相交：existing.start_date <= end AND existing.end_date >= start。
// 结果按 start_date、id 排序，保证返回顺序确定。
func (s *AvailabilityService) FindOverlaps(deskID uint, shift string, start, end time.Time, excludeAssignmentID uint) ([]models.DeskAssignment, error) {
	var overlaps []models.DeskAssignment

	query := s.DB.
		Where("desk_id = ? AND shift = ? AND released_date IS NULL", deskID, shift).
		Where("start_date <= ? AND end_date >= ?", end, start)

	if excludeAssignmentID != 0 {
		query = query.Where("id <> ?", excludeAssignmentID)
	}

	if err := query.Preload("Employee").Order("start_date, id").Find(&overlaps).Error; err != nil {
		return nil, err
	}

	return overlaps, nil
}

// 2. HasConflict 判断指定时段是否已被占用
func (s *AvailabilityService) HasConflict(deskID uint, shift string, start, end time.Time) (bool, error) {
	overlaps, err := s.FindOverlaps(deskID, shift, start, end, 0)
	if err != nil {
		return false, err
	}
	return len(overlaps) > 0, nil
}

// 3. FindAvailableDesk 确定性分配器
//
// 候选工位先按编号升序排序（可解析为数字时按数值比较，否则按字典序），
// 再逐个检查冲突，返回第一个空闲的。输入和底层数据不变时结果必然相同。
func (s *AvailabilityService) FindAvailableDesk(candidates []models.Desk, shift string, start, end time.Time) (*models.Desk, error) {
	sorted := make([]models.Desk, len(candidates))
	copy(sorted, candidates)
	sortDesksByNumber(sorted)

	for i := range sorted {
		conflict, err := s.HasConflict(sorted[i].ID, shift, start, end)
		if err != nil {
			return nil, err
		}
		if !conflict {
			return &sorted[i], nil
		}
	}

	return nil, nil
}

// sortDesksByNumber 按工位编号升序排序
func sortDesksByNumber(desks []models.Desk) {
	sort.Slice(desks, func(i, j int) bool {
		a, errA := strconv.Atoi(desks[i].DeskNumber)
		b, errB := strconv.Atoi(desks[j].DeskNumber)
		if errA == nil && errB == nil && a != b {
			return a < b
		}
		return desks[i].DeskNumber < desks[j].DeskNumber
	})
}
