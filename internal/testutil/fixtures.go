package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"sentinel/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with the given role, a hashed
// password, and a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, role)
}

// CreateTestUserWithEmail creates a user with the given email and role.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an active personal-lines account with no
// assigned producer.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithProducer(t, db, nil)
}

// CreateTestAccountWithProducer creates an account assigned to the given
// producer.
func CreateTestAccountWithProducer(t *testing.T, db *gorm.DB, producerID *string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:               fmt.Sprintf("Test Account %d", nextID()),
		Type:               models.AccountTypePersonal,
		Status:             models.AccountStatusActive,
		AssignedProducerID: producerID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestContact creates a contact on the given account.
func CreateTestContact(t *testing.T, db *gorm.DB, accountID string) *models.Contact {
	t.Helper()

	n := nextID()
	contact := &models.Contact{
		AccountID: accountID,
		FirstName: "Test",
		LastName:  fmt.Sprintf("Contact%d", n),
		Email:     fmt.Sprintf("contact%d@test.com", n),
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// CreateTestCarrier creates a direct carrier.
func CreateTestCarrier(t *testing.T, db *gorm.DB) *models.Carrier {
	t.Helper()

	carrier := &models.Carrier{
		Name: fmt.Sprintf("Test Carrier %d", nextID()),
		Type: models.CarrierTypeDirect,
	}
	if err := db.Create(carrier).Error; err != nil {
		t.Fatalf("failed to create test carrier: %v", err)
	}
	return carrier
}

// CreateTestPolicy creates an active policy on the given account with the
// given premium (in cents).
func CreateTestPolicy(t *testing.T, db *gorm.DB, accountID string, premium int64) *models.Policy {
	t.Helper()

	policy := &models.Policy{
		AccountID:      accountID,
		LineOfBusiness: "Personal Auto",
		PolicyNumber:   fmt.Sprintf("POL-%d", nextID()),
		Premium:        premium,
		Status:         models.PolicyStatusActive,
	}
	if err := db.Create(policy).Error; err != nil {
		t.Fatalf("failed to create test policy: %v", err)
	}
	return policy
}

// CreateTestInstallment creates an installment on the given policy.
func CreateTestInstallment(t *testing.T, db *gorm.DB, policyID string, dueDate time.Time, status models.InstallmentStatus) *models.Installment {
	t.Helper()

	inst := &models.Installment{
		PolicyID: policyID,
		DueDate:  &dueDate,
		Amount:   15000,
		Status:   status,
	}
	if err := db.Create(inst).Error; err != nil {
		t.Fatalf("failed to create test installment: %v", err)
	}
	return inst
}

// CreateTestProspect creates a prospect at the New Lead stage.
func CreateTestProspect(t *testing.T, db *gorm.DB) *models.Prospect {
	t.Helper()
	return CreateTestProspectWithProducer(t, db, nil)
}

// CreateTestProspectWithProducer creates a prospect assigned to the given
// producer.
func CreateTestProspectWithProducer(t *testing.T, db *gorm.DB, producerID *string) *models.Prospect {
	t.Helper()

	n := nextID()
	prospect := &models.Prospect{
		FirstName:          "Test",
		LastName:           fmt.Sprintf("Prospect%d", n),
		Email:              fmt.Sprintf("prospect%d@test.com", n),
		Source:             models.SourceReferral,
		LOBInterest:        "Personal Auto",
		EstimatedPremium:   120000,
		PipelineStage:      models.StageNewLead,
		AssignedProducerID: producerID,
	}
	if err := db.Create(prospect).Error; err != nil {
		t.Fatalf("failed to create test prospect: %v", err)
	}
	return prospect
}

// CreateTestServiceItem creates a not-started renewal item on the given
// account.
func CreateTestServiceItem(t *testing.T, db *gorm.DB, accountID string) *models.ServiceItem {
	t.Helper()

	item := &models.ServiceItem{
		Type:        models.ServiceItemTypeRenewal,
		AccountID:   accountID,
		Description: fmt.Sprintf("Test service item %d", nextID()),
		Status:      models.ServiceItemStatusNotStarted,
		Urgency:     models.UrgencyMedium,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test service item: %v", err)
	}
	return item
}

// CreateTestTask creates an open task created by the given user.
func CreateTestTask(t *testing.T, db *gorm.DB, createdBy string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     fmt.Sprintf("Test Task %d", nextID()),
		CreatedBy: createdBy,
		Priority:  models.TaskPriorityMedium,
		Status:    models.TaskStatusOpen,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestSale creates a sales log entry placed on the given date.
func CreateTestSale(t *testing.T, db *gorm.DB, date time.Time, lob, saleType string, premium int64) *models.SalesLogEntry {
	t.Helper()

	entry := &models.SalesLogEntry{
		Date:           &date,
		LineOfBusiness: lob,
		Premium:        premium,
		SaleType:       saleType,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return entry
}
