package services

import (
	"testing"

	"sentinel/internal/models"
	"sentinel/internal/testutil"
)

const testPassword = "correct-horse-battery"

func TestSetup(t *testing.T) {
	t.Run("creates_first_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Setup(testMeta(), "owner@agency.com", testPassword, "Agency Owner")
		testutil.AssertNoError(t, err)

		if user.Role != models.RoleAdmin {
			t.Errorf("setup user must be Admin, got %s", user.Role)
		}
		if !user.IsActive {
			t.Error("setup user should be active")
		}

		var entry models.AuditLog
		if err := db.Where("entity_type = ? AND entity_id = ?", models.EntityUser, user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected create audit entry: %v", err)
		}
		if entry.UserID != nil {
			t.Error("setup runs unauthenticated, the entry has no acting user")
		}
	})

	t.Run("refuses_second_run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Setup(testMeta(), "owner@agency.com", testPassword, "Agency Owner")
		testutil.AssertNoError(t, err)

		_, err = svc.Setup(testMeta(), "second@agency.com", testPassword, "Second Admin")
		testutil.AssertAppError(t, err, "SETUP_COMPLETE")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Setup(testMeta(), "owner@agency.com", "short", "Agency Owner")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRegister(t *testing.T) {
	t.Run("admin_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		producer := testutil.CreateTestUser(t, db, models.RoleProducer)

		_, err := svc.Register(actorFor(producer), testMeta(), "new@agency.com", testPassword, "New User", models.RoleCSR)
		testutil.AssertAppError(t, err, "FORBIDDEN")

		admin := testutil.CreateTestUser(t, db, models.RoleAdmin)
		user, err := svc.Register(actorFor(admin), testMeta(), "new@agency.com", testPassword, "New User", models.RoleCSR)
		testutil.AssertNoError(t, err)
		if user.Role != models.RoleCSR {
			t.Errorf("expected CSR, got %s", user.Role)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		admin := testutil.CreateTestUser(t, db, models.RoleAdmin)

		_, err := svc.Register(actorFor(admin), testMeta(), "dup@agency.com", testPassword, "First", models.RoleCSR)
		testutil.AssertNoError(t, err)
		_, err = svc.Register(actorFor(admin), testMeta(), "DUP@agency.com", testPassword, "Second", models.RoleCSR)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCSR)

		loggedIn, err := svc.AttemptLogin(testMeta(), user.Email, testPassword)
		testutil.AssertNoError(t, err)

		if loggedIn.LastLoginAt == nil {
			t.Error("login must stamp last_login_at")
		}

		var entry models.AuditLog
		if err := db.Where("action = ? AND entity_id = ?", models.AuditActionLogin, user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected login audit entry: %v", err)
		}
	})

	t.Run("wrong_password_and_unknown_email_look_alike", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCSR)

		_, err := svc.AttemptLogin(testMeta(), user.Email, "wrong-password-here")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

		_, err = svc.AttemptLogin(testMeta(), "nobody@agency.com", testPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("disabled_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCSR)
		db.Model(user).Update("is_active", false)

		_, err := svc.AttemptLogin(testMeta(), user.Email, testPassword)
		testutil.AssertAppError(t, err, "USER_DISABLED")
	})

	t.Run("failed_login_writes_no_audit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCSR)

		_, _ = svc.AttemptLogin(testMeta(), user.Email, "wrong-password-here")

		var count int64
		db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionLogin).Count(&count)
		if count != 0 {
			t.Errorf("failed login must not write a login entry, got %d", count)
		}
	})
}
