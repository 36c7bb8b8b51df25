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

// CreateCarrierInput holds the fields accepted when creating a carrier.
type CreateCarrierInput struct {
	Name          string
	Type          models.CarrierType
	Phone         string
	Email         string
	PortalURL     string
	AppetiteNotes string
	AMBestRating  string
}

// CreateCarrierContactInput holds the fields for a new carrier contact.
type CreateCarrierContactInput struct {
	Name          string
	Title         string
	Email         string
	Phone         string
	SpecialtyLOBs string
	Notes         string
}

// carrierService handles carrier business logic.
type carrierService struct {
	db *gorm.DB
}

// NewCarrierService creates a new CarrierServicer.
func NewCarrierService(db *gorm.DB) CarrierServicer {
	return &carrierService{db: db}
}

// CreateCarrier creates a carrier and its Create audit entry.
func (s *carrierService) CreateCarrier(actor authz.Actor, meta audit.RequestMeta, input CreateCarrierInput) (*models.Carrier, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityCarrier); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "carrier name is required")
	}

	carrier := &models.Carrier{
		Name:          input.Name,
		Type:          input.Type,
		Phone:         input.Phone,
		Email:         input.Email,
		PortalURL:     input.PortalURL,
		AppetiteNotes: input.AppetiteNotes,
		AMBestRating:  input.AMBestRating,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(carrier).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityCarrier, carrier.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return carrier, nil
}

// GetCarriers retrieves a paginated list of carriers.
func (s *carrierService) GetCarriers(page pagination.PageRequest) (*pagination.PageResponse[models.Carrier], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Carrier{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var carriers []models.Carrier
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&carriers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(carriers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCarrierByID retrieves one carrier.
func (s *carrierService) GetCarrierByID(id string) (*models.Carrier, error) {
	var carrier models.Carrier
	if err := s.db.Where("id = ?", id).First(&carrier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarrierNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &carrier, nil
}

// CreateCarrierContact creates a contact under an existing carrier.
func (s *carrierService) CreateCarrierContact(actor authz.Actor, meta audit.RequestMeta, carrierID string, input CreateCarrierContactInput) (*models.CarrierContact, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityCarrierContact); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact name is required")
	}

	if _, err := s.GetCarrierByID(carrierID); err != nil {
		return nil, err
	}

	contact := &models.CarrierContact{
		CarrierID:     carrierID,
		Name:          input.Name,
		Title:         input.Title,
		Email:         input.Email,
		Phone:         input.Phone,
		SpecialtyLOBs: input.SpecialtyLOBs,
		Notes:         input.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityCarrierContact, contact.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// GetCarrierContacts lists the contacts on a carrier.
func (s *carrierService) GetCarrierContacts(carrierID string) ([]models.CarrierContact, error) {
	if _, err := s.GetCarrierByID(carrierID); err != nil {
		return nil, err
	}

	var contacts []models.CarrierContact
	if err := s.db.Where("carrier_id = ?", carrierID).Order("name").Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contacts, nil
}
