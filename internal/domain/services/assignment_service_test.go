package services

import (
	"errors"
	"testing"
	"time"

	"desk-management-service/internal/domain/models"

	"gorm.io/gorm"
)

type assignmentFixture struct {
	db    *gorm.DB
	svc   InterfaceAssignmentService
	admin *models.User
	floor *models.Floor
	dept  *models.Department
	desk  *models.Desk
	alice *models.Employee
	bob   *models.Employee
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()
	availability := NewAvailabilityService(db, cfg)
	svc := NewAssignmentService(db, cfg, availability)

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	desk := seedDesk(t, db, "205", floor, dept, models.DeskStatusAvailable)
	alice := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")
	bob := seedEmployee(t, db, "EMP-002", "Bob", "Engineering")

	return &assignmentFixture{
		db: db, svc: svc, admin: admin,
		floor: floor, dept: dept, desk: desk,
		alice: alice, bob: bob,
	}
}

func (f *assignmentFixture) assignInput(employee *models.Employee, start, end time.Time) AssignDeskInput {
	return AssignDeskInput{
		DeskID:         f.desk.ID,
		EmployeeID:     employee.ID,
		AssignmentType: models.AssignmentTypePermanent,
		Shift:          models.ShiftMorning,
		StartDate:      start,
		EndDate:        end,
		AssignedBy:     f.admin.ID,
	}
}

func TestAssignDeskHappyPath(t *testing.T) {
	f := newAssignmentFixture(t)

	assignment, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30)))
	if err != nil {
		t.Fatalf("AssignDesk失败: %v", err)
	}
	if assignment.ReleasedDate != nil {
		t.Error("新分配不应带释放日期")
	}
	if assignment.IsAutoAssigned {
		t.Error("手动分配不应标记为自动分配")
	}

	// 工位状态转为ASSIGNED
	var desk models.Desk
	if err := f.db.First(&desk, f.desk.ID).Error; err != nil {
		t.Fatalf("查询工位失败: %v", err)
	}
	if desk.CurrentStatus != models.DeskStatusAssigned {
		t.Errorf("期望工位状态ASSIGNED，实际%s", desk.CurrentStatus)
	}

	// 写入一条状态历史
	var histories []models.DeskStatusHistory
	if err := f.db.Where("desk_id = ?", f.desk.ID).Find(&histories).Error; err != nil {
		t.Fatalf("查询状态历史失败: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("期望1条状态历史，实际%d条", len(histories))
	}
	if histories[0].OldStatus != models.DeskStatusAvailable || histories[0].NewStatus != models.DeskStatusAssigned {
		t.Errorf("状态历史内容错误: %s -> %s", histories[0].OldStatus, histories[0].NewStatus)
	}
}

func TestAssignDeskConflict(t *testing.T) {
	f := newAssignmentFixture(t)

	if _, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30))); err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	// 同工位同班次重叠时段，未带改签标记时返回冲突错误
	_, err := f.svc.AssignDesk(f.assignInput(f.bob,
		date(2026, time.September, 15), date(2026, time.October, 15)))

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望ConflictError，实际%v", err)
	}
	if conflict.DeskNumber != "205" {
		t.Errorf("冲突错误工位编号错误: %s", conflict.DeskNumber)
	}
	if len(conflict.Overlaps) != 1 {
		t.Fatalf("期望1条冲突明细，实际%d条", len(conflict.Overlaps))
	}
	detail := conflict.Overlaps[0]
	if detail.EmployeeName != "Alice" || detail.EmployeeCode != "EMP-001" {
		t.Errorf("冲突明细应指向占用者: %+v", detail)
	}

	// 原分配保持不变
	var count int64
	f.db.Model(&models.DeskAssignment{}).
		Where("desk_id = ? AND released_date IS NULL", f.desk.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("冲突被拒后活跃分配数应为1，实际%d", count)
	}
}

func TestAssignDeskReassignment(t *testing.T) {
	f := newAssignmentFixture(t)

	if _, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30))); err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	// 带改签标记：释放Alice的分配，Bob接管
	input := f.assignInput(f.bob, date(2026, time.September, 15), date(2026, time.October, 15))
	input.AllowReassignment = true
	assignment, err := f.svc.AssignDesk(input)
	if err != nil {
		t.Fatalf("改签失败: %v", err)
	}
	if assignment.EmployeeID != f.bob.ID {
		t.Error("改签后的分配应属于新员工")
	}

	var actives []models.DeskAssignment
	f.db.Where("desk_id = ? AND released_date IS NULL", f.desk.ID).Find(&actives)
	if len(actives) != 1 || actives[0].EmployeeID != f.bob.ID {
		t.Errorf("改签后工位上应只有新员工的活跃分配，实际%d条", len(actives))
	}
}

func TestAssignDeskOneActivePerEmployee(t *testing.T) {
	f := newAssignmentFixture(t)

	// Alice先占205
	if _, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30))); err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	// Alice换到207：旧分配释放，旧工位降级
	other := seedDesk(t, f.db, "207", f.floor, f.dept, models.DeskStatusAvailable)
	input := f.assignInput(f.alice, date(2026, time.October, 1), date(2026, time.October, 31))
	input.DeskID = other.ID
	if _, err := f.svc.AssignDesk(input); err != nil {
		t.Fatalf("二次分配失败: %v", err)
	}

	var actives []models.DeskAssignment
	f.db.Where("employee_id = ? AND released_date IS NULL", f.alice.ID).Find(&actives)
	if len(actives) != 1 || actives[0].DeskID != other.ID {
		t.Fatalf("员工应只剩一条活跃分配且在新工位上，实际%d条", len(actives))
	}

	var oldDesk models.Desk
	f.db.First(&oldDesk, f.desk.ID)
	if oldDesk.CurrentStatus != models.DeskStatusAvailable {
		t.Errorf("旧工位应降级为AVAILABLE，实际%s", oldDesk.CurrentStatus)
	}
}

func TestAssignDeskRejectsUnavailableDesk(t *testing.T) {
	f := newAssignmentFixture(t)

	for _, status := range []string{models.DeskStatusMaintenance, models.DeskStatusInactive} {
		if err := f.db.Model(&models.Desk{}).Where("id = ?", f.desk.ID).
			Update("current_status", status).Error; err != nil {
			t.Fatalf("更新工位状态失败: %v", err)
		}

		_, err := f.svc.AssignDesk(f.assignInput(f.alice,
			date(2026, time.September, 1), date(2026, time.September, 30)))
		if !errors.Is(err, ErrDeskUnavailable) {
			t.Errorf("状态%s应拒绝分配，实际错误%v", status, err)
		}
	}
}

func TestAssignDeskValidation(t *testing.T) {
	f := newAssignmentFixture(t)

	input := f.assignInput(f.alice, date(2026, time.September, 30), date(2026, time.September, 1))
	if _, err := f.svc.AssignDesk(input); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("结束早于开始应返回ErrInvalidDateRange，实际%v", err)
	}

	input = f.assignInput(f.alice, date(2026, time.September, 1), date(2026, time.September, 30))
	input.Shift = "AFTERNOON"
	if _, err := f.svc.AssignDesk(input); !errors.Is(err, ErrInvalidShift) {
		t.Errorf("非法班次应返回ErrInvalidShift，实际%v", err)
	}

	input = f.assignInput(f.alice, date(2026, time.September, 1), date(2026, time.September, 30))
	input.AssignmentType = "FOREVER"
	if _, err := f.svc.AssignDesk(input); !errors.Is(err, ErrInvalidAssignmentType) {
		t.Errorf("非法类型应返回ErrInvalidAssignmentType，实际%v", err)
	}

	input = f.assignInput(f.alice, date(2026, time.September, 1), date(2026, time.September, 30))
	input.DeskID = 9999
	if _, err := f.svc.AssignDesk(input); !errors.Is(err, ErrDeskNotFound) {
		t.Errorf("不存在的工位应返回ErrDeskNotFound，实际%v", err)
	}

	input = f.assignInput(f.alice, date(2026, time.September, 1), date(2026, time.September, 30))
	input.EmployeeID = 9999
	if _, err := f.svc.AssignDesk(input); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("不存在的员工应返回ErrEmployeeNotFound，实际%v", err)
	}
}

func TestAssignDeskApprovesLinkedRequest(t *testing.T) {
	f := newAssignmentFixture(t)

	request := &models.DeskRequest{
		ReferenceNo:  "ref-0001",
		EmployeeID:   f.alice.ID,
		DepartmentID: f.dept.ID,
		Shift:        models.ShiftMorning,
		FromDate:     date(2026, time.September, 1),
		ToDate:       date(2026, time.September, 30),
		Status:       models.RequestStatusPending,
	}
	if err := f.db.Create(request).Error; err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}

	input := f.assignInput(f.alice, date(2026, time.September, 1), date(2026, time.September, 30))
	input.RequestID = request.ID
	if _, err := f.svc.AssignDesk(input); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	var updated models.DeskRequest
	f.db.First(&updated, request.ID)
	if updated.Status != models.RequestStatusApproved {
		t.Errorf("关联申请应转为APPROVED，实际%s", updated.Status)
	}
	if updated.AssignedDeskID == nil || *updated.AssignedDeskID != f.desk.ID {
		t.Error("关联申请应绑定分配的工位")
	}
}

func TestReleaseAssignment(t *testing.T) {
	f := newAssignmentFixture(t)

	assignment, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30)))
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	if err := f.svc.ReleaseAssignment(assignment.ID, f.admin.ID); err != nil {
		t.Fatalf("释放失败: %v", err)
	}

	var released models.DeskAssignment
	f.db.First(&released, assignment.ID)
	if released.ReleasedDate == nil {
		t.Fatal("释放后released_date应有值")
	}

	var desk models.Desk
	f.db.First(&desk, f.desk.ID)
	if desk.CurrentStatus != models.DeskStatusAvailable {
		t.Errorf("无活跃分配后工位应回到AVAILABLE，实际%s", desk.CurrentStatus)
	}

	// 重复释放无副作用
	if err := f.svc.ReleaseAssignment(assignment.ID, f.admin.ID); err != nil {
		t.Errorf("重复释放不应报错: %v", err)
	}

	if err := f.svc.ReleaseAssignment(9999, f.admin.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("不存在的分配应返回ErrAssignmentNotFound，实际%v", err)
	}
}

func TestListAssignmentsFilters(t *testing.T) {
	f := newAssignmentFixture(t)

	if _, err := f.svc.AssignDesk(f.assignInput(f.alice,
		date(2026, time.September, 1), date(2026, time.September, 30))); err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	other := seedDesk(t, f.db, "207", f.floor, f.dept, models.DeskStatusAvailable)
	input := f.assignInput(f.bob, date(2026, time.September, 1), date(2026, time.September, 30))
	input.DeskID = other.ID
	if _, err := f.svc.AssignDesk(input); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	rows, total, err := f.svc.ListAssignments(AssignmentListFilter{})
	if err != nil {
		t.Fatalf("ListAssignments失败: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("期望2条记录，实际total=%d len=%d", total, len(rows))
	}

	rows, total, err = f.svc.ListAssignments(AssignmentListFilter{EmployeeCode: "EMP-002"})
	if err != nil {
		t.Fatalf("ListAssignments失败: %v", err)
	}
	if total != 1 || rows[0].EmployeeCode != "EMP-002" {
		t.Errorf("按工号过滤失败: total=%d", total)
	}

	rows, total, err = f.svc.ListAssignments(AssignmentListFilter{DeskNumber: "205"})
	if err != nil {
		t.Fatalf("ListAssignments失败: %v", err)
	}
	if total != 1 || rows[0].DeskNumber != "205" {
		t.Errorf("按工位编号过滤失败: total=%d", total)
	}
}

func TestReconcileDeskStatuses(t *testing.T) {
	f := newAssignmentFixture(t)

	// 人为制造不一致：两条活跃分配同属Alice，工位状态却是AVAILABLE
	seedAssignment(t, f.db, f.desk, f.alice, f.admin.ID, models.ShiftMorning,
		date(2026, time.September, 1), date(2026, time.September, 30))
	other := seedDesk(t, f.db, "207", f.floor, f.dept, models.DeskStatusAvailable)
	seedAssignment(t, f.db, other, f.alice, f.admin.ID, models.ShiftMorning,
		date(2026, time.October, 1), date(2026, time.October, 31))

	// 另一个工位标着ASSIGNED但没有任何活跃分配
	stale := seedDesk(t, f.db, "209", f.floor, f.dept, models.DeskStatusAssigned)

	report, err := f.svc.ReconcileDeskStatuses(f.admin.ID)
	if err != nil {
		t.Fatalf("ReconcileDeskStatuses失败: %v", err)
	}
	if report.ReleasedAssignments != 1 {
		t.Errorf("期望释放1条重复分配，实际%d", report.ReleasedAssignments)
	}

	// Alice只剩一条活跃分配（最新的那条）
	var actives []models.DeskAssignment
	f.db.Where("employee_id = ? AND released_date IS NULL", f.alice.ID).Find(&actives)
	if len(actives) != 1 || actives[0].DeskID != other.ID {
		t.Fatalf("对账后员工应只剩最新的活跃分配，实际%d条", len(actives))
	}

	var reconciled models.Desk
	f.db.First(&reconciled, stale.ID)
	if reconciled.CurrentStatus != models.DeskStatusAvailable {
		t.Errorf("无活跃分配的工位应回到AVAILABLE，实际%s", reconciled.CurrentStatus)
	}

	reconciled = models.Desk{}
	f.db.First(&reconciled, other.ID)
	if reconciled.CurrentStatus != models.DeskStatusAssigned {
		t.Errorf("有活跃分配的工位应为ASSIGNED，实际%s", reconciled.CurrentStatus)
	}
}
