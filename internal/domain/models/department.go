package models

// Department 表示部门，每个部门绑定到一个楼层
type Department struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);unique;not null" json:"name"`
	FloorID uint   `gorm:"not null" json:"floor_id"`

	// 关联关系
	Floor *Floor `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
	Desks []Desk `gorm:"foreignKey:DepartmentID" json:"desks,omitempty"`
}
