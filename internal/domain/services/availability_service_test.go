package services

import (
	"testing"
	"time"

	"desk-management-service/internal/domain/models"
)

func TestFindOverlapsBoundaries(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAvailabilityService(db, cfg)

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	desk := seedDesk(t, db, "205", floor, dept, models.DeskStatusAssigned)
	emp := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	// 已有分配：9月10日~9月20日 早班
	seedAssignment(t, db, desk, emp, admin.ID, models.ShiftMorning,
		date(2026, time.September, 10), date(2026, time.September, 20))

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"完全在前", date(2026, time.September, 1), date(2026, time.September, 9), 0},
		{"完全在后", date(2026, time.September, 21), date(2026, time.September, 30), 0},
		{"首日相接", date(2026, time.September, 1), date(2026, time.September, 10), 1},
		{"末日相接", date(2026, time.September, 20), date(2026, time.September, 25), 1},
		{"完全包含", date(2026, time.September, 1), date(2026, time.September, 30), 1},
		{"被包含", date(2026, time.September, 12), date(2026, time.September, 15), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overlaps, err := svc.FindOverlaps(desk.ID, models.ShiftMorning, tc.start, tc.end, 0)
			if err != nil {
				t.Fatalf("FindOverlaps失败: %v", err)
			}
			if len(overlaps) != tc.want {
				t.Errorf("期望%d条重叠，实际%d条", tc.want, len(overlaps))
			}
		})
	}
}

func TestFindOverlapsShiftIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, testConfig())

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	desk := seedDesk(t, db, "205", floor, dept, models.DeskStatusAssigned)
	emp := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	seedAssignment(t, db, desk, emp, admin.ID, models.ShiftMorning,
		date(2026, time.September, 1), date(2026, time.September, 30))

	// 同工位同时段，夜班不受早班占用影响
	conflict, err := svc.HasConflict(desk.ID, models.ShiftNight,
		date(2026, time.September, 1), date(2026, time.September, 30))
	if err != nil {
		t.Fatalf("HasConflict失败: %v", err)
	}
	if conflict {
		t.Error("夜班不应与早班的分配冲突")
	}
}

func TestFindOverlapsIgnoresReleased(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, testConfig())

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	desk := seedDesk(t, db, "205", floor, dept, models.DeskStatusAvailable)
	emp := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	a := seedAssignment(t, db, desk, emp, admin.ID, models.ShiftMorning,
		date(2026, time.September, 1), date(2026, time.September, 30))
	released := date(2026, time.September, 5)
	if err := db.Model(a).Update("released_date", released).Error; err != nil {
		t.Fatalf("释放分配失败: %v", err)
	}

	conflict, err := svc.HasConflict(desk.ID, models.ShiftMorning,
		date(2026, time.September, 10), date(2026, time.September, 15))
	if err != nil {
		t.Fatalf("HasConflict失败: %v", err)
	}
	if conflict {
		t.Error("已释放的分配不应参与冲突判定")
	}
}

func TestFindAvailableDeskOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, testConfig())

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")

	// 故意乱序创建，分配器应按编号数值升序选取
	d210 := seedDesk(t, db, "210", floor, dept, models.DeskStatusAvailable)
	d203 := seedDesk(t, db, "203", floor, dept, models.DeskStatusAvailable)
	d207 := seedDesk(t, db, "207", floor, dept, models.DeskStatusAvailable)
	emp := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	candidates := []models.Desk{*d210, *d203, *d207}
	start := date(2026, time.September, 1)
	end := date(2026, time.September, 30)

	picked, err := svc.FindAvailableDesk(candidates, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	if picked == nil || picked.DeskNumber != "203" {
		t.Fatalf("期望选中203，实际%v", picked)
	}

	// 占用203后应选中207
	seedAssignment(t, db, d203, emp, admin.ID, models.ShiftMorning, start, end)
	picked, err = svc.FindAvailableDesk(candidates, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	if picked == nil || picked.DeskNumber != "207" {
		t.Fatalf("期望选中207，实际%v", picked)
	}
}

func TestFindAvailableDeskExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, testConfig())

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	desk := seedDesk(t, db, "205", floor, dept, models.DeskStatusAssigned)
	emp := seedEmployee(t, db, "EMP-001", "Alice", "Engineering")

	start := date(2026, time.September, 1)
	end := date(2026, time.September, 30)
	seedAssignment(t, db, desk, emp, admin.ID, models.ShiftMorning, start, end)

	picked, err := svc.FindAvailableDesk([]models.Desk{*desk}, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	if picked != nil {
		t.Errorf("候选全部冲突时应返回nil，实际%v", picked)
	}

	// 空候选集同样返回nil而不是错误
	picked, err = svc.FindAvailableDesk(nil, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	if picked != nil {
		t.Error("空候选集应返回nil")
	}
}

func TestFindAvailableDeskDeterministic(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, testConfig())

	floor, dept := seedFloorWithDepartment(t, db, 2, "Engineering")
	d1 := seedDesk(t, db, "201", floor, dept, models.DeskStatusAvailable)
	d2 := seedDesk(t, db, "202", floor, dept, models.DeskStatusAvailable)

	start := date(2026, time.September, 1)
	end := date(2026, time.September, 30)

	// 输入顺序不同，结果必须一致
	first, err := svc.FindAvailableDesk([]models.Desk{*d2, *d1}, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	second, err := svc.FindAvailableDesk([]models.Desk{*d1, *d2}, models.ShiftMorning, start, end)
	if err != nil {
		t.Fatalf("FindAvailableDesk失败: %v", err)
	}
	if first == nil || second == nil || first.ID != second.ID {
		t.Errorf("分配器结果不确定: %v vs %v", first, second)
	}
}
