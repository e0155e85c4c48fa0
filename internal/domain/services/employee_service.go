package services

import (
	"errors"
	"strings"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEmployeeInput 创建员工档案的输入参数
type CreateEmployeeInput struct {
	EmployeeCode   string // 为空时自动生成
	Name           string
	Department     string
	UserID         uint
	PreferredShift string
}

// InterfaceEmployeeService 定义员工服务接口
type InterfaceEmployeeService interface {
	GetAllEmployees(department string, pagination models.PaginationQuery) ([]models.Employee, models.PaginationResult, error)
	GetEmployeeByID(id uint) (*models.Employee, error)
	GetEmployeeByUserID(userID uint) (*models.Employee, error)
	CreateEmployee(input CreateEmployeeInput) (*models.Employee, error)
}

// EmployeeService 提供员工相关的服务
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService 创建一个新的员工服务
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllEmployees 获取员工列表，支持按部门过滤和分页
func (s *EmployeeService) GetAllEmployees(department string, pagination models.PaginationQuery) ([]models.Employee, models.PaginationResult, error) {
	var employees []models.Employee
	var total int64

	query := s.DB.Model(&models.Employee{})
	if department != "" {
		query = query.Where("department = ?", department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	offset := (pagination.PageNum - 1) * pagination.PageSize
	if err := query.
		Preload("User").
		Order("employee_code").
		Offset(offset).
		Limit(pagination.PageSize).
		Find(&employees).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	return employees, models.NewPaginationResult(int(total), pagination.PageNum, pagination.PageSize), nil
}

// 2. GetEmployeeByID 按ID获取员工
func (s *EmployeeService) GetEmployeeByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Preload("User").First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// 3. GetEmployeeByUserID 按关联用户ID获取员工档案
func (s *EmployeeService) GetEmployeeByUserID(userID uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Where("user_id = ?", userID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// 4. CreateEmployee 创建员工档案
//
// 工号为空时自动生成 EMP- 前缀的短编号；显式传入的工号必须唯一。
func (s *EmployeeService) CreateEmployee(input CreateEmployeeInput) (*models.Employee, error) {
	code := strings.TrimSpace(input.EmployeeCode)
	if code == "" {
		code = mintEmployeeCode()
	} else {
		var count int64
		if err := s.DB.Model(&models.Employee{}).
			Where("employee_code = ?", code).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmployeeAlreadyExist
		}
	}

	if input.PreferredShift != "" && !models.IsValidShift(input.PreferredShift) {
		return nil, ErrInvalidShift
	}

	employee := &models.Employee{
		EmployeeCode:   code,
		Name:           input.Name,
		Department:     input.Department,
		UserID:         input.UserID,
		PreferredShift: input.PreferredShift,
	}
	if err := s.DB.Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// mintEmployeeCode 生成 EMP- 前缀的工号
func mintEmployeeCode() string {
	return "EMP-" + strings.ToUpper(uuid.NewString()[:8])
}
