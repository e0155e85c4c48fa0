package models

import "time"

// 工位申请状态
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// DeskRequest 表示员工提交的工位申请
//
// 申请创建时为 PENDING；当分配器找到工位（自动分配）或管理员手动分配
// 时转为 APPROVED。REJECTED 只由管理员操作产生，系统不会自动拒绝。
type DeskRequest struct {
	BaseModel
	ReferenceNo    string    `gorm:"type:varchar(36);unique;not null" json:"reference_no"` // 对外展示的申请号
	EmployeeID     uint      `gorm:"not null;index" json:"employee_id"`
	DepartmentID   uint      `gorm:"not null" json:"department_id"`
	Shift          string    `gorm:"type:varchar(20);not null" json:"shift"` // MORNING / NIGHT
	FromDate       time.Time `gorm:"type:date;not null" json:"from_date"`
	ToDate         time.Time `gorm:"type:date;not null" json:"to_date"`
	Note           string    `gorm:"type:text" json:"note"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"` // PENDING, APPROVED, REJECTED
	AssignedDeskID *uint     `json:"assigned_desk_id"`

	// 关联关系
	Employee     *Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	AssignedDesk *Desk       `gorm:"foreignKey:AssignedDeskID" json:"assigned_desk,omitempty"`
}
