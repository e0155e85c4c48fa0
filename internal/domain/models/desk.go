package models

// 工位状态
const (
	DeskStatusAvailable   = "AVAILABLE"
	DeskStatusAssigned    = "ASSIGNED"
	DeskStatusMaintenance = "MAINTENANCE"
	DeskStatusInactive    = "INACTIVE"
)

// Desk 表示一个可分配的工位
//
// CurrentStatus 是活跃分配集合的缓存投影：当且仅当工位上存在未释放
// 的分配时才应为 ASSIGNED，由 AssignmentService 在事务内负责同步。
type Desk struct {
	BaseModel
	DeskNumber    string `gorm:"type:varchar(50);unique;not null" json:"desk_number"` // 工位编号，编码了楼层+序号，如"2003"
	Floor         int    `gorm:"not null" json:"floor"`                               // 楼层编号（从工位编号解码得到）
	FloorID       uint   `gorm:"not null" json:"floor_id"`
	DepartmentID  *uint  `json:"department_id"` // 所属部门，可为空
	Location      string `gorm:"type:varchar(255)" json:"location"`
	CurrentStatus string `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"current_status"` // AVAILABLE, ASSIGNED, MAINTENANCE, INACTIVE

	// 关联关系
	FloorRef      *Floor              `gorm:"foreignKey:FloorID" json:"floor_ref,omitempty"`
	Department    *Department         `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assignments   []DeskAssignment    `gorm:"foreignKey:DeskID" json:"assignments,omitempty"`
	StatusHistory []DeskStatusHistory `gorm:"foreignKey:DeskID" json:"status_history,omitempty"`
}

// IsValidDeskStatus 检查工位状态是否合法
func IsValidDeskStatus(status string) bool {
	switch status {
	case DeskStatusAvailable, DeskStatusAssigned, DeskStatusMaintenance, DeskStatusInactive:
		return true
	}
	return false
}
