package services

import (
	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// CreateDocumentInput holds the metadata for a stored file.
type CreateDocumentInput struct {
	Name             string
	FilePath         string
	FileType         string
	FileSize         int64
	Category         string
	LinkedEntityType string
	LinkedEntityID   string
	Description      string
}

// documentService handles document metadata. The bytes themselves live
// outside the database.
type documentService struct {
	db *gorm.DB
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB) DocumentServicer {
	return &documentService{db: db}
}

// CreateDocument records file metadata against an entity.
func (s *documentService) CreateDocument(actor authz.Actor, meta audit.RequestMeta, input CreateDocumentInput) (*models.Document, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityDocument); err != nil {
		return nil, err
	}
	if input.Name == "" || input.FilePath == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document name and file path are required")
	}

	doc := &models.Document{
		Name:             input.Name,
		FilePath:         input.FilePath,
		FileType:         input.FileType,
		FileSize:         input.FileSize,
		Category:         input.Category,
		LinkedEntityType: input.LinkedEntityType,
		LinkedEntityID:   input.LinkedEntityID,
		UploadedBy:       actor.ID,
		Description:      input.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityDocument, doc.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// GetDocuments lists document metadata, optionally filtered to one entity.
func (s *documentService) GetDocuments(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.Document], error) {
	page.Defaults()

	base := s.db.Model(&models.Document{})
	if entityType != "" && entityID != "" {
		base = base.Where("linked_entity_type = ? AND linked_entity_id = ?", entityType, entityID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var docs []models.Document
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&docs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(docs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
