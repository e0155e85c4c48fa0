package services

import (
	"errors"
	"strings"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"
	"desk-management-service/pkg/logger"

	"gorm.io/gorm"
)

// SignupInput 员工自助注册的输入参数
type SignupInput struct {
	Email          string
	Password       string
	FullName       string
	EmployeeCode   string // 为空时自动生成
	Department     string
	PreferredShift string
}

// InterfaceUserService 定义用户服务接口
type InterfaceUserService interface {
	// Signup 注册EMPLOYEE角色的用户并创建员工档案
	Signup(input SignupInput) (*models.User, error)
	// GetUserByID 按ID获取用户
	GetUserByID(id uint) (*models.User, error)
	// CreateUser 由管理员创建任意角色的用户
	CreateUser(email, password, fullName, role string) (*models.User, error)
	// EnsureDefaultAdmin 保证配置的默认管理员账号存在
	EnsureDefaultAdmin() error
}

// UserService 提供用户账号相关的服务
type UserService struct {
	DB       *gorm.DB
	Config   *config.Config
	Employee InterfaceEmployeeService
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config, employeeService InterfaceEmployeeService) InterfaceUserService {
	return &UserService{
		DB:       db,
		Config:   cfg,
		Employee: employeeService,
	}
}

// 1. Signup 员工自助注册
//
// 用户和员工档案在同一事务内创建，注册出的用户固定为EMPLOYEE角色。
func (s *UserService) Signup(input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExist
	}

	if input.PreferredShift != "" && !models.IsValidShift(input.PreferredShift) {
		return nil, ErrInvalidShift
	}

	user := &models.User{
		Email:        email,
		PasswordHash: input.Password, // BeforeCreate钩子负责散列
		FullName:     input.FullName,
		Role:         models.RoleEmployee,
		IsActive:     true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		code := strings.TrimSpace(input.EmployeeCode)
		if code == "" {
			code = mintEmployeeCode()
		} else {
			var existing int64
			if err := tx.Model(&models.Employee{}).
				Where("employee_code = ?", code).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return ErrEmployeeAlreadyExist
			}
		}

		employee := &models.Employee{
			EmployeeCode:   code,
			Name:           input.FullName,
			Department:     input.Department,
			UserID:         user.ID,
			PreferredShift: input.PreferredShift,
		}
		return tx.Create(employee).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// 2. GetUserByID 按ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Employee").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 3. CreateUser 由管理员创建任意角色的用户
func (s *UserService) CreateUser(email, password, fullName, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, errors.New("invalid role")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExist
	}

	user := &models.User{
		Email:        email,
		PasswordHash: password,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// 4. EnsureDefaultAdmin 保证默认管理员存在
//
// 启动时调用。配置的管理员邮箱已存在则不做任何修改。
func (s *UserService) EnsureDefaultAdmin() error {
	email := strings.ToLower(strings.TrimSpace(s.Config.DefaultAdminEmail))
	if email == "" {
		return nil
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: s.Config.DefaultAdminPassword,
		FullName:     "System Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("默认管理员账号已创建: %s", email)
	return nil
}
