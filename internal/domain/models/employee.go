package models

// Employee 表示员工档案
type Employee struct {
	BaseModel
	EmployeeCode   string `gorm:"type:varchar(50);unique;not null" json:"employee_code"`
	Name           string `gorm:"type:varchar(255);not null" json:"name"`
	Department     string `gorm:"type:varchar(100);not null" json:"department"` // 部门名称（冗余字符串，见 Department 表）
	UserID         uint   `gorm:"not null" json:"user_id"`
	PreferredShift string `gorm:"type:varchar(20)" json:"preferred_shift"` // MORNING / NIGHT，可为空

	// 关联关系
	User        *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignments []DeskAssignment `gorm:"foreignKey:EmployeeID" json:"assignments,omitempty"`
	Requests    []DeskRequest    `gorm:"foreignKey:EmployeeID" json:"requests,omitempty"`
}
