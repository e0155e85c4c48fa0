package services

import (
	"errors"
	"testing"
	"time"

	"desk-management-service/internal/domain/models"

	"gorm.io/gorm"
)

type requestFixture struct {
	db       *gorm.DB
	svc      InterfaceDeskRequestService
	settings InterfaceSettingsService
	floor    *models.Floor
	dept     *models.Department
	alice    *models.Employee
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()
	availability := NewAvailabilityService(db, cfg)
	settings := NewSettingsService(db, cfg, nil)
	svc := NewDeskRequestService(db, cfg, availability, settings)

	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	alice := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	return &requestFixture{db: db, svc: svc, settings: settings, floor: floor, dept: dept, alice: alice}
}

func (f *requestFixture) createInput() CreateDeskRequestInput {
	return CreateDeskRequestInput{
		UserID:   f.alice.UserID,
		Shift:    models.ShiftMorning,
		FromDate: date(2026, time.September, 1),
		ToDate:   date(2026, time.September, 30),
	}
}

func TestCreateRequestStaysPendingWhenAutoAssignmentDisabled(t *testing.T) {
	f := newRequestFixture(t)

	// 部门楼层上有空闲工位，但自动分配默认关闭
	seedDesk(t, f.db, "205", f.floor, f.dept, models.DeskStatusAvailable)

	request, err := f.svc.CreateRequest(f.createInput())
	if err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if request.Status != models.RequestStatusPending {
		t.Errorf("开关关闭时申请应保持PENDING，实际%s", request.Status)
	}
	if request.AssignedDeskID != nil {
		t.Error("开关关闭时不应分配工位")
	}
	if request.ReferenceNo == "" {
		t.Error("申请应生成申请号")
	}
}

func TestCreateRequestAutoAssigns(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.settings.SetAutoAssignment(true); err != nil {
		t.Fatalf("开启自动分配失败: %v", err)
	}

	// 203编号更小，应被选中
	seedDesk(t, f.db, "205", f.floor, f.dept, models.DeskStatusAvailable)
	d203 := seedDesk(t, f.db, "203", f.floor, f.dept, models.DeskStatusAvailable)

	request, err := f.svc.CreateRequest(f.createInput())
	if err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if request.Status != models.RequestStatusApproved {
		t.Fatalf("自动分配命中后申请应为APPROVED，实际%s", request.Status)
	}
	if request.AssignedDeskID == nil || *request.AssignedDeskID != d203.ID {
		t.Errorf("应选中编号最小的203，实际%v", request.AssignedDeskID)
	}

	// 生成的分配是TEMPORARY且标记为自动分配，分配日取申请起始日
	var assignment models.DeskAssignment
	if err := f.db.Where("desk_id = ? AND released_date IS NULL", d203.ID).First(&assignment).Error; err != nil {
		t.Fatalf("查询分配失败: %v", err)
	}
	if assignment.AssignmentType != models.AssignmentTypeTemporary || !assignment.IsAutoAssigned {
		t.Errorf("自动分配应为TEMPORARY且标记IsAutoAssigned: %+v", assignment)
	}
	if !assignment.AssignedDate.Equal(date(2026, time.September, 1)) {
		t.Errorf("分配日应为申请起始日，实际%v", assignment.AssignedDate)
	}

	var desk models.Desk
	f.db.First(&desk, d203.ID)
	if desk.CurrentStatus != models.DeskStatusAssigned {
		t.Errorf("分配后工位应为ASSIGNED，实际%s", desk.CurrentStatus)
	}
}

func TestCreateRequestNoAvailableDesk(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.settings.SetAutoAssignment(true); err != nil {
		t.Fatalf("开启自动分配失败: %v", err)
	}

	// 唯一候选已被占用；INACTIVE的工位不进入候选集
	admin := seedUser(t, f.db, "admin@example.com", models.RoleAdmin)
	taken := seedDesk(t, f.db, "205", f.floor, f.dept, models.DeskStatusAssigned)
	bob := seedEmployee(t, f.db, "EMP-002", "Bob", "Engineering")
	seedAssignment(t, f.db, taken, bob, admin.ID, models.ShiftMorning,
		date(2026, time.September, 1), date(2026, time.September, 30))
	seedDesk(t, f.db, "203", f.floor, f.dept, models.DeskStatusInactive)

	request, err := f.svc.CreateRequest(f.createInput())
	if err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if request.Status != models.RequestStatusPending {
		t.Errorf("无可用工位时申请应保持PENDING，实际%s", request.Status)
	}
}

func TestCreateRequestNightShiftSlotFree(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.settings.SetAutoAssignment(true); err != nil {
		t.Fatalf("开启自动分配失败: %v", err)
	}

	// 工位的早班已被占，夜班档期空闲
	admin := seedUser(t, f.db, "admin@example.com", models.RoleAdmin)
	desk := seedDesk(t, f.db, "205", f.floor, f.dept, models.DeskStatusAssigned)
	bob := seedEmployee(t, f.db, "EMP-002", "Bob", "Engineering")
	seedAssignment(t, f.db, desk, bob, admin.ID, models.ShiftMorning,
		date(2026, time.September, 1), date(2026, time.September, 30))

	input := f.createInput()
	input.Shift = models.ShiftNight
	request, err := f.svc.CreateRequest(input)
	if err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if request.Status != models.RequestStatusApproved {
		t.Errorf("夜班档期空闲时应自动批准，实际%s", request.Status)
	}

	// 工位已是ASSIGNED，不应追加ASSIGNED→ASSIGNED的状态历史
	var historyCount int64
	if err := f.db.Model(&models.DeskStatusHistory{}).Where("desk_id = ?", desk.ID).Count(&historyCount).Error; err != nil {
		t.Fatalf("查询状态历史失败: %v", err)
	}
	if historyCount != 0 {
		t.Errorf("状态未变化时不应写状态历史，实际%d条", historyCount)
	}

	var got models.Desk
	f.db.First(&got, desk.ID)
	if got.CurrentStatus != models.DeskStatusAssigned {
		t.Errorf("工位应保持ASSIGNED，实际%s", got.CurrentStatus)
	}
}

func TestCreateRequestMaintenanceDeskStillCandidate(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.settings.SetAutoAssignment(true); err != nil {
		t.Fatalf("开启自动分配失败: %v", err)
	}

	// 维修中的工位仍参与自动分配，只有INACTIVE被排除
	desk := seedDesk(t, f.db, "205", f.floor, f.dept, models.DeskStatusMaintenance)

	request, err := f.svc.CreateRequest(f.createInput())
	if err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if request.Status != models.RequestStatusApproved {
		t.Fatalf("维修中的工位空闲时应自动批准，实际%s", request.Status)
	}
	if request.AssignedDeskID == nil || *request.AssignedDeskID != desk.ID {
		t.Errorf("应选中维修中的工位，实际%v", request.AssignedDeskID)
	}

	// 状态从MAINTENANCE变为ASSIGNED并留痕
	var history models.DeskStatusHistory
	if err := f.db.Where("desk_id = ?", desk.ID).First(&history).Error; err != nil {
		t.Fatalf("查询状态历史失败: %v", err)
	}
	if history.OldStatus != models.DeskStatusMaintenance || history.NewStatus != models.DeskStatusAssigned {
		t.Errorf("状态历史应为MAINTENANCE→ASSIGNED，实际%s→%s", history.OldStatus, history.NewStatus)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	f := newRequestFixture(t)

	input := f.createInput()
	input.Shift = "AFTERNOON"
	if _, err := f.svc.CreateRequest(input); !errors.Is(err, ErrInvalidShift) {
		t.Errorf("非法班次应返回ErrInvalidShift，实际%v", err)
	}

	input = f.createInput()
	input.FromDate, input.ToDate = input.ToDate, input.FromDate
	if _, err := f.svc.CreateRequest(input); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("结束早于开始应返回ErrInvalidDateRange，实际%v", err)
	}

	input = f.createInput()
	input.UserID = 9999
	if _, err := f.svc.CreateRequest(input); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("无员工档案的用户应返回ErrEmployeeNotFound，实际%v", err)
	}
}

func TestCreateRequestDepartmentConfigMissing(t *testing.T) {
	f := newRequestFixture(t)

	// 员工档案上的部门名没有对应的部门配置
	orphan := seedEmployee(t, f.db, "EMP-009", "Carol", "Marketing")

	input := f.createInput()
	input.UserID = orphan.UserID
	if _, err := f.svc.CreateRequest(input); !errors.Is(err, ErrDepartmentConfig) {
		t.Errorf("部门配置缺失应返回ErrDepartmentConfig，实际%v", err)
	}
}

func TestListRequestsForUser(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.svc.CreateRequest(f.createInput()); err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}
	if _, err := f.svc.CreateRequest(f.createInput()); err != nil {
		t.Fatalf("CreateRequest失败: %v", err)
	}

	requests, err := f.svc.ListRequestsForUser(f.alice.UserID)
	if err != nil {
		t.Fatalf("ListRequestsForUser失败: %v", err)
	}
	if len(requests) != 2 {
		t.Errorf("期望2条申请，实际%d条", len(requests))
	}

	listed, result, err := f.svc.ListRequests(models.RequestStatusPending, models.PaginationQuery{PageNum: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListRequests失败: %v", err)
	}
	if result.Total != 2 || len(listed) != 2 {
		t.Errorf("按状态过滤失败: total=%d len=%d", result.Total, len(listed))
	}
}
