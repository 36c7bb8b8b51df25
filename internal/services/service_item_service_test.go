package services

import (
	"testing"

	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/testutil"
)

func TestCreateServiceItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewServiceItemService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)

	item, err := svc.CreateServiceItem(actorFor(csr), testMeta(), CreateServiceItemInput{
		Type:      models.ServiceItemTypeEndorsement,
		AccountID: account.ID,
	})
	testutil.AssertNoError(t, err)

	if item.Status != models.ServiceItemStatusNotStarted {
		t.Errorf("new items start Not Started, got %s", item.Status)
	}
	if item.Urgency != models.UrgencyMedium {
		t.Errorf("expected default urgency Medium, got %s", item.Urgency)
	}
	if n := countAuditEntries(db, item.ID); n != 1 {
		t.Errorf("expected 1 create audit entry, got %d", n)
	}

	_, err = svc.CreateServiceItem(actorFor(csr), testMeta(), CreateServiceItemInput{
		Type:      models.ServiceItemTypeEndorsement,
		AccountID: "missing-account",
	})
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestUpdateServiceItemTerminalStamp(t *testing.T) {
	for _, status := range []models.ServiceItemStatus{models.ServiceItemStatusCompleted, models.ServiceItemStatusClosed} {
		t.Run(string(status), func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewServiceItemService(db)
			csr := testutil.CreateTestUser(t, db, models.RoleCSR)
			account := testutil.CreateTestAccount(t, db)
			item := testutil.CreateTestServiceItem(t, db, account.ID)

			s := status
			updated, err := svc.UpdateServiceItem(actorFor(csr), testMeta(), item.ID, ServiceItemUpdateFields{Status: &s})
			testutil.AssertNoError(t, err)

			if updated.CompletedAt == nil {
				t.Errorf("status %s must stamp completed_at", status)
			}

			var entries []models.AuditLog
			db.Where("entity_id = ? AND action = ?", item.ID, models.AuditActionUpdate).Find(&entries)
			if len(entries) != 1 || entries[0].FieldChanged != "status" {
				t.Errorf("expected a single status entry, got %+v", entries)
			}
		})
	}

	t.Run("non_terminal_does_not_stamp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewServiceItemService(db)
		csr := testutil.CreateTestUser(t, db, models.RoleCSR)
		account := testutil.CreateTestAccount(t, db)
		item := testutil.CreateTestServiceItem(t, db, account.ID)

		s := models.ServiceItemStatusAwaitingCarrier
		updated, err := svc.UpdateServiceItem(actorFor(csr), testMeta(), item.ID, ServiceItemUpdateFields{Status: &s})
		testutil.AssertNoError(t, err)
		if updated.CompletedAt != nil {
			t.Error("waiting statuses must not stamp completed_at")
		}
	})
}

func TestGetServiceItemsOpenFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewServiceItemService(db)
	account := testutil.CreateTestAccount(t, db)

	open := testutil.CreateTestServiceItem(t, db, account.ID)
	closed := testutil.CreateTestServiceItem(t, db, account.ID)
	db.Model(closed).Update("status", models.ServiceItemStatusClosed)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetServiceItems(page, ServiceItemFilter{Open: true})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 1 || result.Data[0].ID != open.ID {
		t.Errorf("open filter should exclude terminal items, got %d", result.TotalItems)
	}
}

func TestCreateServiceItemStoreFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewServiceItemService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)
	testutil.TeardownTestDB(t, db)

	_, err := svc.CreateServiceItem(actorFor(csr), testMeta(), CreateServiceItemInput{
		Type:      models.ServiceItemTypeRenewal,
		AccountID: account.ID,
	})
	testutil.AssertAppError(t, err, "INTERNAL_ERROR")
}

func TestGetBoardCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewServiceItemService(db)
	account := testutil.CreateTestAccount(t, db)

	testutil.CreateTestServiceItem(t, db, account.ID)
	testutil.CreateTestServiceItem(t, db, account.ID)

	inProgress := testutil.CreateTestServiceItem(t, db, account.ID)
	db.Model(inProgress).Updates(map[string]interface{}{
		"status": models.ServiceItemStatusInProgress,
		"type":   models.ServiceItemTypeEndorsement,
	})

	completed := testutil.CreateTestServiceItem(t, db, account.ID)
	db.Model(completed).Update("status", models.ServiceItemStatusCompleted)
	closed := testutil.CreateTestServiceItem(t, db, account.ID)
	db.Model(closed).Update("status", models.ServiceItemStatusClosed)

	counts, err := svc.GetBoardCounts()
	testutil.AssertNoError(t, err)

	if counts.ByStatus[string(models.ServiceItemStatusNotStarted)] != 2 {
		t.Errorf("expected 2 Not Started, got %d", counts.ByStatus[string(models.ServiceItemStatusNotStarted)])
	}
	if counts.ByStatus[string(models.ServiceItemStatusInProgress)] != 1 {
		t.Errorf("expected 1 In Progress, got %d", counts.ByStatus[string(models.ServiceItemStatusInProgress)])
	}
	for _, terminal := range []models.ServiceItemStatus{models.ServiceItemStatusCompleted, models.ServiceItemStatusClosed} {
		if _, ok := counts.ByStatus[string(terminal)]; ok {
			t.Errorf("terminal status %s must not appear in the header counts", terminal)
		}
	}

	if counts.ByType[string(models.ServiceItemTypeRenewal)] != 2 {
		t.Errorf("expected 2 open Renewal items, got %d", counts.ByType[string(models.ServiceItemTypeRenewal)])
	}
	if counts.ByType[string(models.ServiceItemTypeEndorsement)] != 1 {
		t.Errorf("expected 1 open Endorsement item, got %d", counts.ByType[string(models.ServiceItemTypeEndorsement)])
	}
}
