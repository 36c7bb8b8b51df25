package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
)

// CreateContactInput holds the fields accepted when creating a contact.
type CreateContactInput struct {
	AccountID               string
	FirstName               string
	LastName                string
	Email                   string
	Phone                   string
	MobilePhone             string
	Role                    string
	IsPrimary               bool
	CommunicationPreference string
	DateOfBirth             *time.Time
}

// ContactUpdateFields holds the optional fields for a contact update.
type ContactUpdateFields struct {
	FirstName               *string
	LastName                *string
	Email                   *string
	Phone                   *string
	MobilePhone             *string
	Role                    *string
	IsPrimary               *bool
	CommunicationPreference *string
	DateOfBirth             *time.Time
}

// contactService handles contact business logic.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// CreateContact creates a contact under an existing account.
func (s *contactService) CreateContact(actor authz.Actor, meta audit.RequestMeta, input CreateContactInput) (*models.Contact, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityContact); err != nil {
		return nil, err
	}
	if input.FirstName == "" && input.LastName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact name is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("id = ?", input.AccountID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	contact := &models.Contact{
		AccountID:               input.AccountID,
		FirstName:               input.FirstName,
		LastName:                input.LastName,
		Email:                   input.Email,
		Phone:                   input.Phone,
		MobilePhone:             input.MobilePhone,
		Role:                    input.Role,
		IsPrimary:               input.IsPrimary,
		CommunicationPreference: input.CommunicationPreference,
		DateOfBirth:             input.DateOfBirth,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityContact, contact.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// GetContactByID retrieves one contact.
func (s *contactService) GetContactByID(actor authz.Actor, id string) (*models.Contact, error) {
	return s.fetch(id)
}

// UpdateContact applies a partial update with per-field audit entries.
func (s *contactService) UpdateContact(actor authz.Actor, meta audit.RequestMeta, id string, fields ContactUpdateFields) (*models.Contact, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityContact); err != nil {
		return nil, err
	}

	contact, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	var changes []audit.Change

	stage := func(column string, oldVal, newVal, apply interface{}) {
		if ch, ok := audit.Diff(column, oldVal, newVal); ok {
			updates[column] = apply
			changes = append(changes, ch)
		}
	}

	if fields.FirstName != nil {
		stage("first_name", contact.FirstName, *fields.FirstName, *fields.FirstName)
	}
	if fields.LastName != nil {
		stage("last_name", contact.LastName, *fields.LastName, *fields.LastName)
	}
	if fields.Email != nil {
		stage("email", contact.Email, *fields.Email, *fields.Email)
	}
	if fields.Phone != nil {
		stage("phone", contact.Phone, *fields.Phone, *fields.Phone)
	}
	if fields.MobilePhone != nil {
		stage("mobile_phone", contact.MobilePhone, *fields.MobilePhone, *fields.MobilePhone)
	}
	if fields.Role != nil {
		stage("role", contact.Role, *fields.Role, *fields.Role)
	}
	if fields.IsPrimary != nil {
		stage("is_primary", contact.IsPrimary, *fields.IsPrimary, *fields.IsPrimary)
	}
	if fields.CommunicationPreference != nil {
		stage("communication_preference", contact.CommunicationPreference, *fields.CommunicationPreference, *fields.CommunicationPreference)
	}
	if fields.DateOfBirth != nil {
		stage("date_of_birth", contact.DateOfBirth, fields.DateOfBirth, fields.DateOfBirth)
	}

	if len(updates) == 0 {
		return contact, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(contact).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityContact, contact.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

func (s *contactService) fetch(id string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contact, nil
}
