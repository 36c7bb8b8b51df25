package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// CarrierHandler handles carrier-related requests.
type CarrierHandler struct {
	carrierService services.CarrierServicer
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(carrierService services.CarrierServicer) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

// CreateCarrierRequest represents the request payload for creating a carrier.
type CreateCarrierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Type          string `json:"type" binding:"required,carrier_type"`
	Phone         string `json:"phone" binding:"max=20"`
	Email         string `json:"email" binding:"omitempty,email"`
	PortalURL     string `json:"portal_url" binding:"omitempty,url"`
	AppetiteNotes string `json:"appetite_notes" binding:"max=2000"`
	AMBestRating  string `json:"am_best_rating" binding:"max=20"`
}

// CreateCarrierContactRequest represents a new carrier contact payload.
type CreateCarrierContactRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Title         string `json:"title" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"max=20"`
	SpecialtyLOBs string `json:"specialty_lobs" binding:"max=500"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// ListCarriers returns a page of carriers
// @Summary     List carriers
// @Tags        carriers
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Carrier]
// @Router      /carriers [get]
func (h *CarrierHandler) ListCarriers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.carrierService.GetCarriers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateCarrier creates a carrier
// @Summary     Create a carrier
// @Tags        carriers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCarrierRequest true "Carrier details"
// @Success     201 {object} models.Carrier
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /carriers [post]
func (h *CarrierHandler) CreateCarrier(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	carrier, err := h.carrierService.CreateCarrier(actor, requestMeta(c), services.CreateCarrierInput{
		Name:          req.Name,
		Type:          models.CarrierType(req.Type),
		Phone:         req.Phone,
		Email:         req.Email,
		PortalURL:     req.PortalURL,
		AppetiteNotes: req.AppetiteNotes,
		AMBestRating:  req.AMBestRating,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"carrier": carrier})
}

// GetCarrier returns one carrier
// @Summary     Get a carrier
// @Tags        carriers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Carrier ID"
// @Success     200 {object} models.Carrier
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /carriers/{id} [get]
func (h *CarrierHandler) GetCarrier(c *gin.Context) {
	carrier, err := h.carrierService.GetCarrierByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"carrier": carrier})
}

// ListCarrierContacts lists the contacts on a carrier
// @Summary     List carrier contacts
// @Tags        carriers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Carrier ID"
// @Success     200 {array} models.CarrierContact
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /carriers/{id}/contacts [get]
func (h *CarrierHandler) ListCarrierContacts(c *gin.Context) {
	contacts, err := h.carrierService.GetCarrierContacts(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// CreateCarrierContact creates an underwriter contact on a carrier
// @Summary     Create a carrier contact
// @Tags        carriers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Carrier ID"
// @Param       request body CreateCarrierContactRequest true "Contact details"
// @Success     201 {object} models.CarrierContact
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /carriers/{id}/contacts [post]
func (h *CarrierHandler) CreateCarrierContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCarrierContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.carrierService.CreateCarrierContact(actor, requestMeta(c), c.Param("id"), services.CreateCarrierContactInput{
		Name:          req.Name,
		Title:         req.Title,
		Email:         req.Email,
		Phone:         req.Phone,
		SpecialtyLOBs: req.SpecialtyLOBs,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}
