package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/services"
)

// ContactHandler handles contact-related requests.
type ContactHandler struct {
	contactService services.ContactServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContactRequest represents the request payload for creating a contact.
type CreateContactRequest struct {
	AccountID               string `json:"account_id" binding:"required,uuid"`
	FirstName               string `json:"first_name" binding:"required,max=100"`
	LastName                string `json:"last_name" binding:"required,max=100"`
	Email                   string `json:"email" binding:"omitempty,email"`
	Phone                   string `json:"phone" binding:"max=20"`
	MobilePhone             string `json:"mobile_phone" binding:"max=20"`
	Role                    string `json:"role" binding:"max=100"`
	IsPrimary               bool   `json:"is_primary"`
	CommunicationPreference string `json:"communication_preference" binding:"max=50"`
	DateOfBirth             string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateContactRequest represents a partial contact update.
type UpdateContactRequest struct {
	FirstName               *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName                *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email                   *string `json:"email" binding:"omitempty,email"`
	Phone                   *string `json:"phone" binding:"omitempty,max=20"`
	MobilePhone             *string `json:"mobile_phone" binding:"omitempty,max=20"`
	Role                    *string `json:"role" binding:"omitempty,max=100"`
	IsPrimary               *bool   `json:"is_primary"`
	CommunicationPreference *string `json:"communication_preference" binding:"omitempty,max=50"`
	DateOfBirth             *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

// CreateContact creates a contact
// @Summary     Create a contact
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateContactRequest true "Contact details"
// @Success     201 {object} models.Contact
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.contactService.CreateContact(actor, requestMeta(c), services.CreateContactInput{
		AccountID:               req.AccountID,
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		MobilePhone:             req.MobilePhone,
		Role:                    req.Role,
		IsPrimary:               req.IsPrimary,
		CommunicationPreference: req.CommunicationPreference,
		DateOfBirth:             dob,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// GetContact returns one contact
// @Summary     Get a contact
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} models.Contact
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.contactService.GetContactByID(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// UpdateContact applies a partial update
// @Summary     Update a contact
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Param       request body UpdateContactRequest true "Fields to update"
// @Success     200 {object} models.Contact
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ContactUpdateFields{
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		MobilePhone:             req.MobilePhone,
		Role:                    req.Role,
		IsPrimary:               req.IsPrimary,
		CommunicationPreference: req.CommunicationPreference,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.DateOfBirth = dob
	}

	contact, err := h.contactService.UpdateContact(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}
