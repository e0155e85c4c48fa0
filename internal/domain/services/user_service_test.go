package services

import (
	"errors"
	"strings"
	"testing"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"
)

func TestSignupCreatesUserAndEmployee(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewUserService(db, cfg, NewEmployeeService(db, cfg))

	user, err := svc.Signup(SignupInput{
		Email:      "Alice@Example.com",
		Password:   "secret123",
		FullName:   "Alice Zhang",
		Department: "Engineering",
	})
	if err != nil {
		t.Fatalf("Signup失败: %v", err)
	}
	if user.Role != models.RoleEmployee {
		t.Errorf("注册用户角色应为EMPLOYEE，实际%s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("邮箱应归一化为小写，实际%s", user.Email)
	}

	// 密码经钩子散列存储
	var stored models.User
	db.First(&stored, user.ID)
	if stored.PasswordHash == "secret123" {
		t.Error("密码不应明文存储")
	}
	if !models.CheckPasswordHash("secret123", stored.PasswordHash) {
		t.Error("散列后的密码应能校验通过")
	}

	// 员工档案同事务创建，工号自动生成
	var employee models.Employee
	if err := db.Where("user_id = ?", user.ID).First(&employee).Error; err != nil {
		t.Fatalf("查询员工档案失败: %v", err)
	}
	if !strings.HasPrefix(employee.EmployeeCode, "EMP-") {
		t.Errorf("自动生成的工号应带EMP-前缀，实际%s", employee.EmployeeCode)
	}

	// 邮箱唯一
	_, err = svc.Signup(SignupInput{
		Email:      "alice@example.com",
		Password:   "other",
		FullName:   "Other",
		Department: "Engineering",
	})
	if !errors.Is(err, ErrUserAlreadyExist) {
		t.Errorf("重复邮箱应返回ErrUserAlreadyExist，实际%v", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecretKey:         "test-secret",
		DefaultAdminEmail:    "admin@example.com",
		DefaultAdminPassword: "admin123",
	}
	svc := NewUserService(db, cfg, NewEmployeeService(db, cfg))

	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("EnsureDefaultAdmin失败: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@example.com").First(&admin).Error; err != nil {
		t.Fatalf("默认管理员未创建: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("默认管理员角色应为ADMIN，实际%s", admin.Role)
	}

	// 幂等：重复调用不再创建
	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("重复调用失败: %v", err)
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("用户数应保持1，实际%d", count)
	}
}

func TestLoginFlow(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	jwtSvc := NewJWTService(cfg, db)

	user := seedUser(t, db, "alice@example.com", models.RoleEmployee)

	result, err := jwtSvc.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login失败: %v", err)
	}
	if result.Token == "" || result.UserID != user.ID || result.Role != models.RoleEmployee {
		t.Errorf("登录结果错误: %+v", result)
	}

	// 令牌声明可回读
	claims, err := jwtSvc.ExtractClaims(result.Token)
	if err != nil {
		t.Fatalf("ExtractClaims失败: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleEmployee {
		t.Errorf("令牌声明错误: %+v", claims)
	}

	if _, err := jwtSvc.Login("alice@example.com", "wrong"); !errors.Is(err, ErrUserPasswordIncorrect) {
		t.Errorf("错误密码应返回ErrUserPasswordIncorrect，实际%v", err)
	}
	if _, err := jwtSvc.Login("nobody@example.com", "password123"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("不存在的用户应返回ErrUserNotFound，实际%v", err)
	}

	// 停用账号不能登录
	db.Model(user).Update("is_active", false)
	if _, err := jwtSvc.Login("alice@example.com", "password123"); !errors.Is(err, ErrUserInactive) {
		t.Errorf("停用账号应返回ErrUserInactive，实际%v", err)
	}
}
