package services

import (
	"errors"

	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// CreateAccountInput holds the fields accepted when creating an account.
type CreateAccountInput struct {
	Name               string
	Type               models.AccountType
	Status             models.AccountStatus
	PrimaryContactID   *string
	AssignedProducerID *string
	AssignedCSRID      *string
	AddressLine1       string
	AddressLine2       string
	City               string
	State              string
	ZipCode            string
	County             string
	Phone              string
	Email              string
}

// AccountUpdateFields holds the optional fields for an account update.
// Nil means "leave unchanged".
type AccountUpdateFields struct {
	Name               *string
	Type               *models.AccountType
	Status             *models.AccountStatus
	PrimaryContactID   *string
	AssignedProducerID *string
	AssignedCSRID      *string
	AddressLine1       *string
	AddressLine2       *string
	City               *string
	State              *string
	ZipCode            *string
	County             *string
	Phone              *string
	Email              *string
}

// AccountFilter holds optional filter parameters for listing accounts.
type AccountFilter struct {
	Status *models.AccountStatus
	Type   *models.AccountType
	Search string
}

// accountService handles account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates an account and its Create audit entry in one
// transaction.
func (s *accountService) CreateAccount(actor authz.Actor, meta audit.RequestMeta, input CreateAccountInput) (*models.Account, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityAccount); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{
		Name:               input.Name,
		Type:               input.Type,
		Status:             input.Status,
		PrimaryContactID:   input.PrimaryContactID,
		AssignedProducerID: input.AssignedProducerID,
		AssignedCSRID:      input.AssignedCSRID,
		AddressLine1:       input.AddressLine1,
		AddressLine2:       input.AddressLine2,
		City:               input.City,
		State:              input.State,
		ZipCode:            input.ZipCode,
		County:             input.County,
		Phone:              input.Phone,
		Email:              input.Email,
	}
	if account.Status == "" {
		account.Status = models.AccountStatusActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityAccount, account.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccounts retrieves a paginated list of accounts. Producers only see
// accounts assigned to them.
func (s *accountService) GetAccounts(actor authz.Actor, page pagination.PageRequest, filter AccountFilter) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{})
	if actor.ScopesReads() {
		base = base.Where("assigned_producer_id = ?", actor.ID)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Search != "" {
		base = base.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves one account, enforcing the producer read scope.
func (s *accountService) GetAccountByID(actor authz.Actor, id string) (*models.Account, error) {
	account, err := s.fetch(s.db, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanRead(account.AssignedProducerID); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccount applies a partial update. Each changed field gets its own
// Update audit entry; a no-op update writes nothing at all.
func (s *accountService) UpdateAccount(actor authz.Actor, meta audit.RequestMeta, id string, fields AccountUpdateFields) (*models.Account, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityAccount); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(actor, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	var changes []audit.Change

	stage := func(column string, oldVal, newVal interface{}, apply interface{}) {
		if ch, ok := audit.Diff(column, oldVal, newVal); ok {
			updates[column] = apply
			changes = append(changes, ch)
		}
	}

	if fields.Name != nil {
		stage("name", account.Name, *fields.Name, *fields.Name)
	}
	if fields.Type != nil {
		stage("type", account.Type, *fields.Type, *fields.Type)
	}
	if fields.Status != nil {
		stage("status", account.Status, *fields.Status, *fields.Status)
	}
	if fields.PrimaryContactID != nil {
		stage("primary_contact_id", account.PrimaryContactID, *fields.PrimaryContactID, *fields.PrimaryContactID)
	}
	if fields.AssignedProducerID != nil {
		stage("assigned_producer_id", account.AssignedProducerID, *fields.AssignedProducerID, *fields.AssignedProducerID)
	}
	if fields.AssignedCSRID != nil {
		stage("assigned_csr_id", account.AssignedCSRID, *fields.AssignedCSRID, *fields.AssignedCSRID)
	}
	if fields.AddressLine1 != nil {
		stage("address_line1", account.AddressLine1, *fields.AddressLine1, *fields.AddressLine1)
	}
	if fields.AddressLine2 != nil {
		stage("address_line2", account.AddressLine2, *fields.AddressLine2, *fields.AddressLine2)
	}
	if fields.City != nil {
		stage("city", account.City, *fields.City, *fields.City)
	}
	if fields.State != nil {
		stage("state", account.State, *fields.State, *fields.State)
	}
	if fields.ZipCode != nil {
		stage("zip_code", account.ZipCode, *fields.ZipCode, *fields.ZipCode)
	}
	if fields.County != nil {
		stage("county", account.County, *fields.County, *fields.County)
	}
	if fields.Phone != nil {
		stage("phone", account.Phone, *fields.Phone, *fields.Phone)
	}
	if fields.Email != nil {
		stage("email", account.Email, *fields.Email, *fields.Email)
	}

	if len(updates) == 0 {
		return account, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(account).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityAccount, account.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(s.db, id)
}

// DeleteAccount removes an account. Admin only. The Delete audit entry
// commits in the same transaction as the row removal.
func (s *accountService) DeleteAccount(actor authz.Actor, meta audit.RequestMeta, id string) error {
	if err := authz.Authorize(actor.Role, authz.ActionDelete, models.EntityAccount); err != nil {
		return err
	}

	account, err := s.fetch(s.db, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		if err := rec.Deleted(models.EntityAccount, account.ID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Account{}, "id = ?", account.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetAccountContacts lists the contacts on an account, after the same scope
// check as fetching the account itself.
func (s *accountService) GetAccountContacts(actor authz.Actor, accountID string) ([]models.Contact, error) {
	if _, err := s.GetAccountByID(actor, accountID); err != nil {
		return nil, err
	}

	var contacts []models.Contact
	if err := s.db.Where("account_id = ?", accountID).Order("is_primary DESC, last_name").Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contacts, nil
}

func (s *accountService) fetch(db *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	if err := db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
