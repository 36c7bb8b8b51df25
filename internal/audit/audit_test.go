package audit_test

import (
	"testing"

	"sentinel/internal/audit"
	"sentinel/internal/models"
	"sentinel/internal/testutil"
)

func TestRecorderCreated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := "user-1"
	rec := audit.NewRecorder(db, &userID, audit.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test-agent"})

	err := rec.Created(models.EntityAccount, "acct-1", map[string]interface{}{"converted_from_prospect": "p-1"})
	testutil.AssertNoError(t, err)

	var entry models.AuditLog
	if err := db.Where("entity_type = ? AND entity_id = ?", models.EntityAccount, "acct-1").First(&entry).Error; err != nil {
		t.Fatalf("expected a create entry: %v", err)
	}
	if entry.Action != models.AuditActionCreate {
		t.Errorf("expected Create action, got %s", entry.Action)
	}
	if entry.UserID == nil || *entry.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %v", entry.UserID)
	}
	if entry.IPAddress != "10.0.0.1" || entry.UserAgent != "test-agent" {
		t.Errorf("request meta not stamped: %+v", entry)
	}
	if entry.Metadata != `{"converted_from_prospect":"p-1"}` {
		t.Errorf("unexpected metadata: %s", entry.Metadata)
	}
	if entry.ID == "" {
		t.Error("expected generated entry id")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected generated timestamp")
	}
}

func TestRecorderChanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := "user-1"
	rec := audit.NewRecorder(db, &userID, audit.RequestMeta{})

	changes := []audit.Change{
		{Field: "status", OldValue: "Open", NewValue: "Completed"},
		{Field: "priority", OldValue: "Low", NewValue: "High"},
	}
	testutil.AssertNoError(t, rec.Changed(models.EntityTask, "task-1", changes))

	var entries []models.AuditLog
	if err := db.Where("entity_id = ?", "task-1").Order("field_changed").Find(&entries).Error; err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected one entry per change, got %d", len(entries))
	}
	if entries[0].FieldChanged != "priority" || entries[0].OldValue != "Low" || entries[0].NewValue != "High" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[1].FieldChanged != "status" || entries[1].Action != models.AuditActionUpdate {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
}

func TestRecorderChangedEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	rec := audit.NewRecorder(db, nil, audit.RequestMeta{})
	testutil.AssertNoError(t, rec.Changed(models.EntityTask, "task-none", nil))

	var count int64
	db.Model(&models.AuditLog{}).Where("entity_id = ?", "task-none").Count(&count)
	if count != 0 {
		t.Errorf("expected no entries for an empty change set, got %d", count)
	}
}

func TestRecorderLoggedIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := "user-7"
	rec := audit.NewRecorder(db, &userID, audit.RequestMeta{IPAddress: "192.168.1.5"})
	testutil.AssertNoError(t, rec.LoggedIn(userID))

	var entry models.AuditLog
	if err := db.Where("action = ? AND entity_id = ?", models.AuditActionLogin, userID).First(&entry).Error; err != nil {
		t.Fatalf("expected a login entry: %v", err)
	}
	if entry.EntityType != models.EntityUser {
		t.Errorf("expected User entity type, got %s", entry.EntityType)
	}
}
