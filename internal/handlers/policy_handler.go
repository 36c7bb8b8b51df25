package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// PolicyHandler handles policy and installment requests.
type PolicyHandler struct {
	policyService services.PolicyServicer
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(policyService services.PolicyServicer) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// CreatePolicyRequest represents the request payload for creating a policy.
// Premium is in cents.
type CreatePolicyRequest struct {
	AccountID        string  `json:"account_id" binding:"required,uuid"`
	CarrierID        *string `json:"carrier_id" binding:"omitempty,uuid"`
	LineOfBusiness   string  `json:"line_of_business" binding:"required,max=100"`
	PolicyNumber     string  `json:"policy_number" binding:"max=100"`
	EffectiveDate    string  `json:"effective_date" binding:"omitempty,datetime=2006-01-02"`
	ExpirationDate   string  `json:"expiration_date" binding:"omitempty,datetime=2006-01-02"`
	Premium          int64   `json:"premium" binding:"gte=0"`
	PaymentPlan      string  `json:"payment_plan" binding:"max=100"`
	RenewalStatus    string  `json:"renewal_status" binding:"max=100"`
	Status           string  `json:"status" binding:"omitempty,policy_status"`
	ServicingOwnerID *string `json:"servicing_owner_id" binding:"omitempty,uuid"`
	ProducingAgentID *string `json:"producing_agent_id" binding:"omitempty,uuid"`
	PriorPolicyID    *string `json:"prior_policy_id" binding:"omitempty,uuid"`
}

// UpdatePolicyRequest represents a partial policy update.
type UpdatePolicyRequest struct {
	CarrierID        *string `json:"carrier_id" binding:"omitempty,uuid"`
	LineOfBusiness   *string `json:"line_of_business" binding:"omitempty,min=1,max=100"`
	PolicyNumber     *string `json:"policy_number" binding:"omitempty,max=100"`
	EffectiveDate    *string `json:"effective_date" binding:"omitempty,datetime=2006-01-02"`
	ExpirationDate   *string `json:"expiration_date" binding:"omitempty,datetime=2006-01-02"`
	Premium          *int64  `json:"premium" binding:"omitempty,gte=0"`
	PaymentPlan      *string `json:"payment_plan" binding:"omitempty,max=100"`
	RenewalStatus    *string `json:"renewal_status" binding:"omitempty,max=100"`
	Status           *string `json:"status" binding:"omitempty,policy_status"`
	ServicingOwnerID *string `json:"servicing_owner_id" binding:"omitempty,uuid"`
	ProducingAgentID *string `json:"producing_agent_id" binding:"omitempty,uuid"`
	PriorPolicyID    *string `json:"prior_policy_id" binding:"omitempty,uuid"`
}

// CreateInstallmentRequest represents a new scheduled payment. Amount in cents.
type CreateInstallmentRequest struct {
	DueDate       string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Amount        int64  `json:"amount" binding:"gte=0"`
	Status        string `json:"status" binding:"omitempty,installment_status"`
	PaymentMethod string `json:"payment_method" binding:"max=100"`
}

// UpdateInstallmentRequest represents a partial installment update.
type UpdateInstallmentRequest struct {
	DueDate       *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Amount        *int64  `json:"amount" binding:"omitempty,gte=0"`
	Status        *string `json:"status" binding:"omitempty,installment_status"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=100"`
	PaidDate      *string `json:"paid_date" binding:"omitempty,datetime=2006-01-02"`
}

// ListPolicies returns a page of policies
// @Summary     List policies
// @Tags        policies
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       account_id query string false "Filter by account"
// @Param       status query string false "Filter by status"
// @Param       line_of_business query string false "Filter by LOB"
// @Param       carrier_id query string false "Filter by carrier"
// @Success     200 {object} pagination.PageResponse[models.Policy]
// @Router      /policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
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

	filter := services.PolicyFilter{
		AccountID:      c.Query("account_id"),
		LineOfBusiness: c.Query("line_of_business"),
		CarrierID:      c.Query("carrier_id"),
	}
	if v := c.Query("status"); v != "" {
		status := models.PolicyStatus(v)
		filter.Status = &status
	}

	result, err := h.policyService.GetPolicies(actor, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePolicy creates a policy
// @Summary     Create a policy
// @Tags        policies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePolicyRequest true "Policy details"
// @Success     201 {object} models.Policy
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /policies [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expiration, err := parseDate(req.ExpirationDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	policy, err := h.policyService.CreatePolicy(actor, requestMeta(c), services.CreatePolicyInput{
		AccountID:        req.AccountID,
		CarrierID:        req.CarrierID,
		LineOfBusiness:   req.LineOfBusiness,
		PolicyNumber:     req.PolicyNumber,
		EffectiveDate:    effective,
		ExpirationDate:   expiration,
		Premium:          req.Premium,
		PaymentPlan:      req.PaymentPlan,
		RenewalStatus:    req.RenewalStatus,
		Status:           models.PolicyStatus(req.Status),
		ServicingOwnerID: req.ServicingOwnerID,
		ProducingAgentID: req.ProducingAgentID,
		PriorPolicyID:    req.PriorPolicyID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"policy": policy})
}

// GetPolicy returns one policy
// @Summary     Get a policy
// @Tags        policies
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Policy ID"
// @Success     200 {object} models.Policy
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /policies/{id} [get]
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	policy, err := h.policyService.GetPolicyByID(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// UpdatePolicy applies a partial update
// @Summary     Update a policy
// @Tags        policies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Policy ID"
// @Param       request body UpdatePolicyRequest true "Fields to update"
// @Success     200 {object} models.Policy
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /policies/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.PolicyUpdateFields{
		CarrierID:        req.CarrierID,
		LineOfBusiness:   req.LineOfBusiness,
		PolicyNumber:     req.PolicyNumber,
		Premium:          req.Premium,
		PaymentPlan:      req.PaymentPlan,
		RenewalStatus:    req.RenewalStatus,
		ServicingOwnerID: req.ServicingOwnerID,
		ProducingAgentID: req.ProducingAgentID,
		PriorPolicyID:    req.PriorPolicyID,
	}
	if req.EffectiveDate != nil {
		d, err := parseDate(*req.EffectiveDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.EffectiveDate = d
	}
	if req.ExpirationDate != nil {
		d, err := parseDate(*req.ExpirationDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.ExpirationDate = d
	}
	if req.Status != nil {
		status := models.PolicyStatus(*req.Status)
		fields.Status = &status
	}

	policy, err := h.policyService.UpdatePolicy(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// ListInstallments lists a policy's installments
// @Summary     List policy installments
// @Tags        policies
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Policy ID"
// @Success     200 {array} models.Installment
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /policies/{id}/installments [get]
func (h *PolicyHandler) ListInstallments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	installments, err := h.policyService.GetPolicyInstallments(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": installments})
}

// CreateInstallment adds a scheduled payment to a policy
// @Summary     Create an installment
// @Tags        policies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Policy ID"
// @Param       request body CreateInstallmentRequest true "Installment details"
// @Success     201 {object} models.Installment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /policies/{id}/installments [post]
func (h *PolicyHandler) CreateInstallment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	installment, err := h.policyService.CreateInstallment(actor, requestMeta(c), c.Param("id"), services.CreateInstallmentInput{
		DueDate:       due,
		Amount:        req.Amount,
		Status:        models.InstallmentStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"installment": installment})
}

// UpdateInstallment applies a partial update
// @Summary     Update an installment
// @Tags        policies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Installment ID"
// @Param       request body UpdateInstallmentRequest true "Fields to update"
// @Success     200 {object} models.Installment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /installments/{id} [put]
func (h *PolicyHandler) UpdateInstallment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.InstallmentUpdateFields{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.DueDate = d
	}
	if req.PaidDate != nil {
		d, err := parseDate(*req.PaidDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.PaidDate = d
	}
	if req.Status != nil {
		status := models.InstallmentStatus(*req.Status)
		fields.Status = &status
	}

	installment, err := h.policyService.UpdateInstallment(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment})
}
