package services

import (
	"testing"

	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/testutil"
)

func TestCreatePolicy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPolicyService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)

	policy, err := svc.CreatePolicy(actorFor(csr), testMeta(), CreatePolicyInput{
		AccountID:      account.ID,
		LineOfBusiness: "Homeowners",
		PolicyNumber:   "HO-100",
		Premium:        250000,
	})
	testutil.AssertNoError(t, err)

	if policy.Status != models.PolicyStatusActive {
		t.Errorf("new policies default to Active, got %s", policy.Status)
	}
	if n := countAuditEntries(db, policy.ID); n != 1 {
		t.Errorf("expected 1 create audit entry, got %d", n)
	}

	_, err = svc.CreatePolicy(actorFor(csr), testMeta(), CreatePolicyInput{
		AccountID:      "missing-account",
		LineOfBusiness: "Homeowners",
	})
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestUpdatePolicyPremiumDiff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPolicyService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)
	policy := testutil.CreateTestPolicy(t, db, account.ID, 120000)

	newPremium := int64(135000)
	updated, err := svc.UpdatePolicy(actorFor(csr), testMeta(), policy.ID, PolicyUpdateFields{Premium: &newPremium})
	testutil.AssertNoError(t, err)

	if updated.Premium != 135000 {
		t.Errorf("premium not applied: %d", updated.Premium)
	}

	var entry models.AuditLog
	if err := db.Where("entity_id = ? AND field_changed = ?", policy.ID, "premium").First(&entry).Error; err != nil {
		t.Fatalf("expected premium change entry: %v", err)
	}
	if entry.OldValue != "120000" || entry.NewValue != "135000" {
		t.Errorf("premium cents audit as base-10 strings: %+v", entry)
	}

	// Same premium again is a no-op.
	before := countAuditEntries(db, policy.ID)
	_, err = svc.UpdatePolicy(actorFor(csr), testMeta(), policy.ID, PolicyUpdateFields{Premium: &newPremium})
	testutil.AssertNoError(t, err)
	if after := countAuditEntries(db, policy.ID); after != before {
		t.Error("no-op premium update must write nothing")
	}
}

func TestInstallments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPolicyService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)
	policy := testutil.CreateTestPolicy(t, db, account.ID, 120000)

	due := date(2026, 7, 1)
	inst, err := svc.CreateInstallment(actorFor(csr), testMeta(), policy.ID, CreateInstallmentInput{
		DueDate: &due,
		Amount:  10000,
	})
	testutil.AssertNoError(t, err)

	if inst.Status != models.InstallmentStatusScheduled {
		t.Errorf("new installments default to Scheduled, got %s", inst.Status)
	}

	list, err := svc.GetPolicyInstallments(actorFor(csr), policy.ID)
	testutil.AssertNoError(t, err)
	if len(list) != 1 {
		t.Fatalf("expected 1 installment, got %d", len(list))
	}

	paid := models.InstallmentStatusPaid
	paidDate := date(2026, 7, 2)
	updated, err := svc.UpdateInstallment(actorFor(csr), testMeta(), inst.ID, InstallmentUpdateFields{
		Status:   &paid,
		PaidDate: &paidDate,
	})
	testutil.AssertNoError(t, err)
	if updated.Status != models.InstallmentStatusPaid || updated.PaidDate == nil {
		t.Errorf("installment update not applied: %+v", updated)
	}

	var entries []models.AuditLog
	db.Where("entity_id = ? AND action = ?", inst.ID, models.AuditActionUpdate).Find(&entries)
	if len(entries) != 2 {
		t.Errorf("expected status and paid_date entries, got %d", len(entries))
	}

	_, err = svc.CreateInstallment(actorFor(csr), testMeta(), "missing-policy", CreateInstallmentInput{Amount: 100})
	testutil.AssertAppError(t, err, "POLICY_NOT_FOUND")
}

func TestGetPoliciesFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPolicyService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	a1 := testutil.CreateTestAccount(t, db)
	a2 := testutil.CreateTestAccount(t, db)

	p1 := testutil.CreateTestPolicy(t, db, a1.ID, 100000)
	testutil.CreateTestPolicy(t, db, a2.ID, 200000)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetPolicies(actorFor(csr), page, PolicyFilter{AccountID: a1.ID})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 || result.Data[0].ID != p1.ID {
		t.Errorf("account filter returned %d policies", result.TotalItems)
	}
}
