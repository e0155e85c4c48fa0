package models

import "time"

// 分配类型
const (
	AssignmentTypePermanent = "PERMANENT"
	AssignmentTypeTemporary = "TEMPORARY"
)

// 班次
const (
	ShiftMorning = "MORNING"
	ShiftNight   = "NIGHT"
)

// DeskAssignment 表示一条工位分配记录
//
// ReleasedDate 为空表示分配仍然活跃。同一工位、同一班次下，活跃分配
// 的 [StartDate, EndDate] 区间不允许重叠（重叠判定为闭区间相交）。
type DeskAssignment struct {
	BaseModel
	DeskID         uint       `gorm:"not null;index" json:"desk_id"`
	EmployeeID     uint       `gorm:"not null;index" json:"employee_id"`
	AssignedBy     uint       `gorm:"not null" json:"assigned_by"` // 执行分配的用户
	AssignedDate   time.Time  `gorm:"type:date;not null" json:"assigned_date"`
	ReleasedDate   *time.Time `gorm:"type:date" json:"released_date"` // 为空 = 活跃
	AssignmentType string     `gorm:"type:varchar(20);not null" json:"assignment_type"` // PERMANENT / TEMPORARY
	Shift          string     `gorm:"type:varchar(20);not null" json:"shift"`           // MORNING / NIGHT
	StartDate      time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time  `gorm:"type:date;not null" json:"end_date"`
	IsAutoAssigned bool       `gorm:"not null;default:false" json:"is_auto_assigned"`
	Notes          string     `gorm:"type:text" json:"notes"`

	// 关联关系
	Desk     *Desk     `gorm:"foreignKey:DeskID" json:"desk,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Assigner *User     `gorm:"foreignKey:AssignedBy" json:"assigner,omitempty"`
}

// IsActive 判断分配是否仍然活跃（未释放）
func (a *DeskAssignment) IsActive() bool {
	return a.ReleasedDate == nil
}

// IsValidShift 检查班次是否合法
func IsValidShift(shift string) bool {
	return shift == ShiftMorning || shift == ShiftNight
}

// IsValidAssignmentType 检查分配类型是否合法
func IsValidAssignmentType(t string) bool {
	return t == AssignmentTypePermanent || t == AssignmentTypeTemporary
}
