package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 创建一个隔离的内存数据库并完成迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Floor{},
		&models.Department{},
		&models.Desk{},
		&models.DeskAssignment{},
		&models.DeskRequest{},
		&models.DeskStatusHistory{},
		&models.SystemSettings{},
	)
	if err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{JWTSecretKey: "test-secret"}
}

// date 构造零点的日期值
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// seedUser 创建一个用户
func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "password123",
		FullName:     "Test " + role,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

// seedEmployee 创建一个员工及其关联用户
func seedEmployee(t *testing.T, db *gorm.DB, code, name, department string) *models.Employee {
	t.Helper()

	user := seedUser(t, db, code+"@example.com", models.RoleEmployee)
	employee := &models.Employee{
		EmployeeCode: code,
		Name:         name,
		Department:   department,
		UserID:       user.ID,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	return employee
}

// seedFloorWithDepartment 创建楼层并挂上部门
func seedFloorWithDepartment(t *testing.T, db *gorm.DB, floorNumber int, departmentName string) (*models.Floor, *models.Department) {
	t.Helper()

	floor := &models.Floor{Name: fmt.Sprintf("Floor %d", floorNumber), Number: floorNumber}
	if err := db.Create(floor).Error; err != nil {
		t.Fatalf("创建楼层失败: %v", err)
	}

	department := &models.Department{Name: departmentName, FloorID: floor.ID}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}
	return floor, department
}

// seedDesk 创建一个工位
func seedDesk(t *testing.T, db *gorm.DB, number string, floor *models.Floor, dept *models.Department, status string) *models.Desk {
	t.Helper()

	desk := &models.Desk{
		DeskNumber:    number,
		Floor:         floor.Number,
		FloorID:       floor.ID,
		CurrentStatus: status,
	}
	if dept != nil {
		desk.DepartmentID = &dept.ID
	}
	if err := db.Create(desk).Error; err != nil {
		t.Fatalf("创建工位失败: %v", err)
	}
	return desk
}

// seedAssignment 直接插入一条分配记录
func seedAssignment(t *testing.T, db *gorm.DB, desk *models.Desk, employee *models.Employee, assignedBy uint, shift string, start, end time.Time) *models.DeskAssignment {
	t.Helper()

	assignment := &models.DeskAssignment{
		DeskID:         desk.ID,
		EmployeeID:     employee.ID,
		AssignedBy:     assignedBy,
		AssignedDate:   start,
		AssignmentType: models.AssignmentTypeTemporary,
		Shift:          shift,
		StartDate:      start,
		EndDate:        end,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("创建分配记录失败: %v", err)
	}
	return assignment
}
