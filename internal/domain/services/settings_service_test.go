package services

import (
	"testing"

	"desk-management-service/internal/domain/models"
)

func TestGetAutoAssignmentDefaultsToDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, testConfig(), nil)

	// 设置行缺失时开关视为关闭
	enabled, err := svc.GetAutoAssignment()
	if err != nil {
		t.Fatalf("GetAutoAssignment失败: %v", err)
	}
	if enabled {
		t.Error("设置行缺失时自动分配应为关闭")
	}
}

func TestSetAutoAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, testConfig(), nil)

	settings, err := svc.SetAutoAssignment(true)
	if err != nil {
		t.Fatalf("SetAutoAssignment失败: %v", err)
	}
	if settings.SettingsKey != models.SystemSettingsKey {
		t.Errorf("设置行键应为%s，实际%s", models.SystemSettingsKey, settings.SettingsKey)
	}

	enabled, err := svc.GetAutoAssignment()
	if err != nil {
		t.Fatalf("GetAutoAssignment失败: %v", err)
	}
	if !enabled {
		t.Error("开启后读取应为true")
	}

	// 重复更新不创建第二行
	if _, err := svc.SetAutoAssignment(false); err != nil {
		t.Fatalf("SetAutoAssignment失败: %v", err)
	}
	var count int64
	db.Model(&models.SystemSettings{}).Count(&count)
	if count != 1 {
		t.Errorf("系统设置应只有一行，实际%d行", count)
	}

	enabled, _ = svc.GetAutoAssignment()
	if enabled {
		t.Error("关闭后读取应为false")
	}
}
