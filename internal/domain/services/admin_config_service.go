package services

import (
	"errors"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceAdminConfigService 定义楼层与部门配置服务接口
type InterfaceAdminConfigService interface {
	GetAllFloors() ([]models.Floor, error)
	CreateFloor(name string, number int) (*models.Floor, error)
	GetAllDepartments() ([]models.Department, error)
	CreateDepartment(name string, floorID uint) (*models.Department, error)
}

// AdminConfigService 提供楼层与部门的配置管理
type AdminConfigService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminConfigService 创建一个新的配置管理服务
func NewAdminConfigService(db *gorm.DB, cfg *config.Config) InterfaceAdminConfigService {
	return &AdminConfigService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllFloors 获取全部楼层（含部门）
func (s *AdminConfigService) GetAllFloors() ([]models.Floor, error) {
	var floors []models.Floor
	if err := s.DB.Preload("Departments").Order("number").Find(&floors).Error; err != nil {
		return nil, err
	}
	return floors, nil
}

// 2. CreateFloor 创建楼层，楼层号唯一
func (s *AdminConfigService) CreateFloor(name string, number int) (*models.Floor, error) {
	var count int64
	if err := s.DB.Model(&models.Floor{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrFloorAlreadyExist
	}

	floor := &models.Floor{Name: name, Number: number}
	if err := s.DB.Create(floor).Error; err != nil {
		return nil, err
	}
	return floor, nil
}

// 3. GetAllDepartments 获取全部部门（含楼层）
func (s *AdminConfigService) GetAllDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Preload("Floor").Order("name").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// 4. CreateDepartment 创建部门并挂到楼层
//
// 部门名已存在时改挂到新楼层（部门搬家），否则新建；
// 一个楼层只挂一个部门，申请的自动分配按"部门→楼层"解析候选工位，
// 多部门同层会让候选集歧义。挂载后该楼层的全部工位归到此部门。
func (s *AdminConfigService) CreateDepartment(name string, floorID uint) (*models.Department, error) {
	var department *models.Department

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var floor models.Floor
		if err := tx.First(&floor, floorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFloorNotFound
			}
			return err
		}

		// 目标楼层已被其他部门占用则拒绝
		var occupant models.Department
		err := tx.Where("floor_id = ? AND name <> ?", floorID, name).First(&occupant).Error
		if err == nil {
			return ErrFloorOccupied
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var existing models.Department
		err = tx.Where("name = ?", name).First(&existing).Error
		switch {
		case err == nil:
			existing.FloorID = floorID
			if err := tx.Model(&existing).Update("floor_id", floorID).Error; err != nil {
				return err
			}
			department = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			department = &models.Department{Name: name, FloorID: floorID}
			if err := tx.Create(department).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.Desk{}).
			Where("floor_id = ?", floorID).
			Update("department_id", department.ID).Error
	})

	if err != nil {
		return nil, err
	}
	return department, nil
}
