package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// NoteHandler handles note and communication log requests.
type NoteHandler struct {
	noteService services.NoteServicer
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService services.NoteServicer) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a new note payload.
type CreateNoteRequest struct {
	Content          string `json:"content" binding:"required,max=5000"`
	LinkedEntityType string `json:"linked_entity_type" binding:"required,max=50"`
	LinkedEntityID   string `json:"linked_entity_id" binding:"required,uuid"`
}

// CreateCommLogRequest represents a logged communication.
type CreateCommLogRequest struct {
	Direction           string  `json:"direction" binding:"required,comm_direction"`
	Channel             string  `json:"channel" binding:"required,comm_channel"`
	Subject             string  `json:"subject" binding:"max=200"`
	BodyPreview         string  `json:"body_preview" binding:"max=2000"`
	LinkedEntityType    string  `json:"linked_entity_type" binding:"max=50"`
	LinkedEntityID      string  `json:"linked_entity_id" binding:"omitempty,uuid"`
	ContactID           *string `json:"contact_id" binding:"omitempty,uuid"`
	CallDurationSeconds int     `json:"call_duration_seconds" binding:"gte=0"`
	SentAt              string  `json:"sent_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ListNotes lists notes for a linked entity
// @Summary     List notes
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       entity_type query string false "Linked entity type"
// @Param       entity_id query string false "Linked entity id"
// @Success     200 {object} pagination.PageResponse[models.Note]
// @Router      /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.noteService.GetNotes(page, c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateNote attaches a note to an entity
// @Summary     Create a note
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNoteRequest true "Note details"
// @Success     201 {object} models.Note
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.noteService.CreateNote(actor, requestMeta(c), services.CreateNoteInput{
		Content:          req.Content,
		LinkedEntityType: req.LinkedEntityType,
		LinkedEntityID:   req.LinkedEntityID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// ListCommLogs lists communication logs for a linked entity
// @Summary     List communication logs
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       entity_type query string false "Linked entity type"
// @Param       entity_id query string false "Linked entity id"
// @Success     200 {object} pagination.PageResponse[models.CommunicationLog]
// @Router      /comm-logs [get]
func (h *NoteHandler) ListCommLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.noteService.GetCommLogs(page, c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateCommLog records a touchpoint with a contact
// @Summary     Log a communication
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCommLogRequest true "Communication details"
// @Success     201 {object} models.CommunicationLog
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /comm-logs [post]
func (h *NoteHandler) CreateCommLog(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCommLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateCommLogInput{
		Direction:           req.Direction,
		Channel:             req.Channel,
		Subject:             req.Subject,
		BodyPreview:         req.BodyPreview,
		LinkedEntityType:    req.LinkedEntityType,
		LinkedEntityID:      req.LinkedEntityID,
		ContactID:           req.ContactID,
		CallDurationSeconds: req.CallDurationSeconds,
	}
	if req.SentAt != "" {
		t, err := parseTimestamp(req.SentAt)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.SentAt = t
	}

	log, err := h.noteService.CreateCommLog(actor, requestMeta(c), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comm_log": log})
}
