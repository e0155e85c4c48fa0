package models

import (
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleAdmin     = "ADMIN"
	RoleEmployee  = "EMPLOYEE"
	RoleITSupport = "IT_SUPPORT"
)

// User 表示系统登录账户
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"` // 不在JSON中暴露密码
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         string `gorm:"type:varchar(20);not null" json:"role"` // ADMIN, EMPLOYEE, IT_SUPPORT
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// 关联关系
	Employee *Employee `gorm:"foreignKey:UserID" json:"employee,omitempty"` // 员工档案（一对一，可为空）
}

// IsValidRole 检查角色是否合法
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleITSupport:
		return true
	}
	return false
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.PasswordHash != "" && len(u.PasswordHash) < 60 {
		hashed, err := HashPassword(u.PasswordHash)
		if err != nil {
			return err
		}
		u.PasswordHash = hashed
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.PasswordHash != "" && len(u.PasswordHash) < 60 {
		hashed, err := HashPassword(u.PasswordHash)
		if err != nil {
			return err
		}
		u.PasswordHash = hashed
	}
	return nil
}
