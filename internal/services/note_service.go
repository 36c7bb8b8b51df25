package services

import (
	"time"

	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// CreateNoteInput holds the fields accepted when creating a note.
type CreateNoteInput struct {
	Content          string
	LinkedEntityType string
	LinkedEntityID   string
}

// CreateCommLogInput holds the fields accepted when logging a communication.
type CreateCommLogInput struct {
	Direction           string
	Channel             string
	Subject             string
	BodyPreview         string
	LinkedEntityType    string
	LinkedEntityID      string
	ContactID           *string
	CallDurationSeconds int
	SentAt              *time.Time
}

// noteService handles notes and communication logs. Polymorphic links are
// stored as-is; referential checks against the linked entity are the
// caller's concern.
type noteService struct {
	db *gorm.DB
}

// NewNoteService creates a new NoteServicer.
func NewNoteService(db *gorm.DB) NoteServicer {
	return &noteService{db: db}
}

// CreateNote attaches a note to an entity.
func (s *noteService) CreateNote(actor authz.Actor, meta audit.RequestMeta, input CreateNoteInput) (*models.Note, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityNote); err != nil {
		return nil, err
	}
	if input.Content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "note content is required")
	}
	if input.LinkedEntityType == "" || input.LinkedEntityID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "linked entity is required")
	}

	note := &models.Note{
		Content:          input.Content,
		LinkedEntityType: input.LinkedEntityType,
		LinkedEntityID:   input.LinkedEntityID,
		CreatedBy:        actor.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityNote, note.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// GetNotes lists notes, optionally filtered to one linked entity.
func (s *noteService) GetNotes(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.Note], error) {
	page.Defaults()

	base := s.db.Model(&models.Note{})
	if entityType != "" && entityID != "" {
		base = base.Where("linked_entity_type = ? AND linked_entity_id = ?", entityType, entityID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notes []models.Note
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&notes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CreateCommLog records a touchpoint with a contact.
func (s *noteService) CreateCommLog(actor authz.Actor, meta audit.RequestMeta, input CreateCommLogInput) (*models.CommunicationLog, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityCommunicationLog); err != nil {
		return nil, err
	}
	if input.Direction == "" || input.Channel == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "direction and channel are required")
	}

	log := &models.CommunicationLog{
		Direction:           input.Direction,
		Channel:             input.Channel,
		Subject:             input.Subject,
		BodyPreview:         input.BodyPreview,
		LinkedEntityType:    input.LinkedEntityType,
		LinkedEntityID:      input.LinkedEntityID,
		ContactID:           input.ContactID,
		UserID:              &actor.ID,
		CallDurationSeconds: input.CallDurationSeconds,
		SentAt:              input.SentAt,
		LoggedAt:            time.Now().UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityCommunicationLog, log.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return log, nil
}

// GetCommLogs lists communication logs, optionally filtered to one entity.
func (s *noteService) GetCommLogs(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.CommunicationLog], error) {
	page.Defaults()

	base := s.db.Model(&models.CommunicationLog{})
	if entityType != "" && entityID != "" {
		base = base.Where("linked_entity_type = ? AND linked_entity_id = ?", entityType, entityID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.CommunicationLog
	if err := base.Order("logged_at DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
