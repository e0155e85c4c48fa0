package models

// Floor 表示办公楼层
type Floor struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);not null" json:"name"`   // 楼层名称，如"Floor 2"
	Number int    `gorm:"unique;not null" json:"number"`            // 楼层编号，唯一

	// 关联关系
	Departments []Department `gorm:"foreignKey:FloorID" json:"departments,omitempty"` // 楼层上的部门
	Desks       []Desk       `gorm:"foreignKey:FloorID" json:"desks,omitempty"`       // 楼层上的工位
}
