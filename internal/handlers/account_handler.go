package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name               string  `json:"name" binding:"required,min=1,max=200"`
	Type               string  `json:"type" binding:"required,account_type"`
	Status             string  `json:"status" binding:"omitempty,account_status"`
	PrimaryContactID   *string `json:"primary_contact_id" binding:"omitempty,uuid"`
	AssignedProducerID *string `json:"assigned_producer_id" binding:"omitempty,uuid"`
	AssignedCSRID      *string `json:"assigned_csr_id" binding:"omitempty,uuid"`
	AddressLine1       string  `json:"address_line1" binding:"max=200"`
	AddressLine2       string  `json:"address_line2" binding:"max=200"`
	City               string  `json:"city" binding:"max=100"`
	State              string  `json:"state" binding:"omitempty,len=2"`
	ZipCode            string  `json:"zip_code" binding:"max=10"`
	County             string  `json:"county" binding:"max=100"`
	Phone              string  `json:"phone" binding:"max=20"`
	Email              string  `json:"email" binding:"omitempty,email"`
}

// UpdateAccountRequest represents a partial account update. Absent fields are
// left unchanged.
type UpdateAccountRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=200"`
	Type               *string `json:"type" binding:"omitempty,account_type"`
	Status             *string `json:"status" binding:"omitempty,account_status"`
	PrimaryContactID   *string `json:"primary_contact_id" binding:"omitempty,uuid"`
	AssignedProducerID *string `json:"assigned_producer_id" binding:"omitempty,uuid"`
	AssignedCSRID      *string `json:"assigned_csr_id" binding:"omitempty,uuid"`
	AddressLine1       *string `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2       *string `json:"address_line2" binding:"omitempty,max=200"`
	City               *string `json:"city" binding:"omitempty,max=100"`
	State              *string `json:"state" binding:"omitempty,len=2"`
	ZipCode            *string `json:"zip_code" binding:"omitempty,max=10"`
	County             *string `json:"county" binding:"omitempty,max=100"`
	Phone              *string `json:"phone" binding:"omitempty,max=20"`
	Email              *string `json:"email" binding:"omitempty,email"`
}

// ListAccounts returns a page of accounts
// @Summary     List accounts
// @Description List accounts with optional status/type/search filters. Producers only see their own book.
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Param       type query string false "Filter by type"
// @Param       search query string false "Name search"
// @Success     200 {object} pagination.PageResponse[models.Account]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AccountFilter{Search: c.Query("search")}
	if v := c.Query("status"); v != "" {
		status := models.AccountStatus(v)
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		accountType := models.AccountType(v)
		filter.Type = &accountType
	}

	result, err := h.accountService.GetAccounts(actor, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateAccount creates an account
// @Summary     Create an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(actor, requestMeta(c), services.CreateAccountInput{
		Name:               req.Name,
		Type:               models.AccountType(req.Type),
		Status:             models.AccountStatus(req.Status),
		PrimaryContactID:   req.PrimaryContactID,
		AssignedProducerID: req.AssignedProducerID,
		AssignedCSRID:      req.AssignedCSRID,
		AddressLine1:       req.AddressLine1,
		AddressLine2:       req.AddressLine2,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		County:             req.County,
		Phone:              req.Phone,
		Email:              req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccount returns one account
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} models.Account
// @Failure     403 {object} ErrorResponse "Out of scope"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount applies a partial update
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AccountUpdateFields{
		Name:               req.Name,
		PrimaryContactID:   req.PrimaryContactID,
		AssignedProducerID: req.AssignedProducerID,
		AssignedCSRID:      req.AssignedCSRID,
		AddressLine1:       req.AddressLine1,
		AddressLine2:       req.AddressLine2,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		County:             req.County,
		Phone:              req.Phone,
		Email:              req.Email,
	}
	if req.Type != nil {
		accountType := models.AccountType(*req.Type)
		fields.Type = &accountType
	}
	if req.Status != nil {
		status := models.AccountStatus(*req.Status)
		fields.Status = &status
	}

	account, err := h.accountService.UpdateAccount(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount removes an account (admin only)
// @Summary     Delete an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(actor, requestMeta(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccountContacts lists the contacts on an account
// @Summary     List account contacts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {array} models.Contact
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id}/contacts [get]
func (h *AccountHandler) GetAccountContacts(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contacts, err := h.accountService.GetAccountContacts(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}
