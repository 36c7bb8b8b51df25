package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// DocumentHandler handles document metadata requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateDocumentRequest represents stored-file metadata.
type CreateDocumentRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	FilePath         string `json:"file_path" binding:"required,max=500"`
	FileType         string `json:"file_type" binding:"max=100"`
	FileSize         int64  `json:"file_size" binding:"gte=0"`
	Category         string `json:"category" binding:"max=100"`
	LinkedEntityType string `json:"linked_entity_type" binding:"max=50"`
	LinkedEntityID   string `json:"linked_entity_id" binding:"omitempty,uuid"`
	Description      string `json:"description" binding:"max=1000"`
}

// ListDocuments lists document metadata for a linked entity
// @Summary     List documents
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       entity_type query string false "Linked entity type"
// @Param       entity_id query string false "Linked entity id"
// @Success     200 {object} pagination.PageResponse[models.Document]
// @Router      /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.documentService.GetDocuments(page, c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateDocument records file metadata against an entity
// @Summary     Create a document record
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDocumentRequest true "Document metadata"
// @Success     201 {object} models.Document
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.documentService.CreateDocument(actor, requestMeta(c), services.CreateDocumentInput{
		Name:             req.Name,
		FilePath:         req.FilePath,
		FileType:         req.FileType,
		FileSize:         req.FileSize,
		Category:         req.Category,
		LinkedEntityType: req.LinkedEntityType,
		LinkedEntityID:   req.LinkedEntityID,
		Description:      req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}
