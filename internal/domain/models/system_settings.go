package models

// SystemSettingsKey 全局设置行的固定主键
const SystemSettingsKey = "GLOBAL"

// SystemSettings 表示全局系统设置（单行表）
//
// 不存在该行时，自动分配视为关闭。
type SystemSettings struct {
	BaseModel
	SettingsKey           string `gorm:"type:varchar(36);unique;not null" json:"settings_key"`
	AutoAssignmentEnabled bool   `gorm:"not null;default:false" json:"auto_assignment_enabled"`
}
