package models

import "time"

// DeskStatusHistory 表示工位状态变更的审计记录
//
// 只追加，不修改也不删除；每次工位状态变化都写入一条。
type DeskStatusHistory struct {
	BaseModel
	DeskID                 uint       `gorm:"not null;index" json:"desk_id"`
	OldStatus              string     `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus              string     `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy              uint       `gorm:"not null" json:"changed_by"`
	Reason                 string     `gorm:"type:varchar(255);not null" json:"reason"`
	Notes                  string     `gorm:"type:text" json:"notes"`
	ExpectedResolutionDate *time.Time `gorm:"type:date" json:"expected_resolution_date"` // 预计恢复日期（维护场景）
	ChangedAt              time.Time  `gorm:"not null" json:"changed_at"`

	// 关联关系
	Desk    *Desk `gorm:"foreignKey:DeskID" json:"desk,omitempty"`
	Changer *User `gorm:"foreignKey:ChangedBy" json:"changer,omitempty"`
}
