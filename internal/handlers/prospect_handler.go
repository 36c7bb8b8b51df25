package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// ProspectHandler handles pipeline requests.
type ProspectHandler struct {
	prospectService services.ProspectServicer
}

// NewProspectHandler creates a new ProspectHandler.
func NewProspectHandler(prospectService services.ProspectServicer) *ProspectHandler {
	return &ProspectHandler{prospectService: prospectService}
}

// CreateProspectRequest represents the request payload for creating a
// prospect. Estimated premium is in cents.
type CreateProspectRequest struct {
	FirstName          string  `json:"first_name" binding:"max=100"`
	LastName           string  `json:"last_name" binding:"max=100"`
	BusinessName       string  `json:"business_name" binding:"max=200"`
	Email              string  `json:"email" binding:"omitempty,email"`
	Phone              string  `json:"phone" binding:"max=20"`
	Source             string  `json:"source" binding:"omitempty,prospect_source"`
	SourceDetail       string  `json:"source_detail" binding:"max=200"`
	ReferrerAccountID  *string `json:"referrer_account_id" binding:"omitempty,uuid"`
	LOBInterest        string  `json:"lob_interest" binding:"max=200"`
	EstimatedPremium   int64   `json:"estimated_premium" binding:"gte=0"`
	CurrentCarrier     string  `json:"current_carrier" binding:"max=200"`
	CurrentExpiration  string  `json:"current_expiration" binding:"omitempty,datetime=2006-01-02"`
	AssignedProducerID *string `json:"assigned_producer_id" binding:"omitempty,uuid"`
	Zip                string  `json:"zip" binding:"max=10"`
	County             string  `json:"county" binding:"max=100"`
}

// UpdateProspectRequest represents a partial prospect update.
type UpdateProspectRequest struct {
	FirstName          *string `json:"first_name" binding:"omitempty,max=100"`
	LastName           *string `json:"last_name" binding:"omitempty,max=100"`
	BusinessName       *string `json:"business_name" binding:"omitempty,max=200"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone" binding:"omitempty,max=20"`
	Source             *string `json:"source" binding:"omitempty,prospect_source"`
	SourceDetail       *string `json:"source_detail" binding:"omitempty,max=200"`
	ReferrerAccountID  *string `json:"referrer_account_id" binding:"omitempty,uuid"`
	LOBInterest        *string `json:"lob_interest" binding:"omitempty,max=200"`
	EstimatedPremium   *int64  `json:"estimated_premium" binding:"omitempty,gte=0"`
	CurrentCarrier     *string `json:"current_carrier" binding:"omitempty,max=200"`
	CurrentExpiration  *string `json:"current_expiration" binding:"omitempty,datetime=2006-01-02"`
	AssignedProducerID *string `json:"assigned_producer_id" binding:"omitempty,uuid"`
	Zip                *string `json:"zip" binding:"omitempty,max=10"`
	County             *string `json:"county" binding:"omitempty,max=100"`
}

// UpdateStageRequest moves a prospect through the pipeline.
type UpdateStageRequest struct {
	PipelineStage string `json:"pipeline_stage" binding:"required,pipeline_stage"`
	CloseReason   string `json:"close_reason" binding:"max=500"`
}

// ListProspects returns a page of prospects
// @Summary     List prospects
// @Tags        prospects
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       stage query string false "Filter by pipeline stage"
// @Param       source query string false "Filter by source"
// @Param       producer_id query string false "Filter by producer"
// @Param       search query string false "Name, business or email search"
// @Success     200 {object} pagination.PageResponse[models.Prospect]
// @Router      /prospects [get]
func (h *ProspectHandler) ListProspects(c *gin.Context) {
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

	filter := services.ProspectFilter{
		Stage:      c.Query("stage"),
		Source:     c.Query("source"),
		ProducerID: c.Query("producer_id"),
		Search:     c.Query("search"),
	}

	result, err := h.prospectService.GetProspects(actor, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPipeline returns open prospects grouped by stage
// @Summary     Pipeline board
// @Tags        prospects
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Prospect
// @Router      /prospects/pipeline [get]
func (h *ProspectHandler) GetPipeline(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pipeline, err := h.prospectService.GetPipeline(actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pipeline": pipeline})
}

// CreateProspect creates a prospect
// @Summary     Create a prospect
// @Tags        prospects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProspectRequest true "Prospect details"
// @Success     201 {object} models.Prospect
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /prospects [post]
func (h *ProspectHandler) CreateProspect(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expiration, err := parseDate(req.CurrentExpiration)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prospect, err := h.prospectService.CreateProspect(actor, requestMeta(c), services.CreateProspectInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		BusinessName:       req.BusinessName,
		Email:              req.Email,
		Phone:              req.Phone,
		Source:             req.Source,
		SourceDetail:       req.SourceDetail,
		ReferrerAccountID:  req.ReferrerAccountID,
		LOBInterest:        req.LOBInterest,
		EstimatedPremium:   req.EstimatedPremium,
		CurrentCarrier:     req.CurrentCarrier,
		CurrentExpiration:  expiration,
		AssignedProducerID: req.AssignedProducerID,
		Zip:                req.Zip,
		County:             req.County,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prospect": prospect})
}

// GetProspect returns one prospect
// @Summary     Get a prospect
// @Tags        prospects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Prospect ID"
// @Success     200 {object} models.Prospect
// @Failure     403 {object} ErrorResponse "Out of scope"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /prospects/{id} [get]
func (h *ProspectHandler) GetProspect(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prospect, err := h.prospectService.GetProspectByID(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prospect": prospect})
}

// UpdateProspect applies a partial update
// @Summary     Update a prospect
// @Tags        prospects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Prospect ID"
// @Param       request body UpdateProspectRequest true "Fields to update"
// @Success     200 {object} models.Prospect
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /prospects/{id} [put]
func (h *ProspectHandler) UpdateProspect(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ProspectUpdateFields{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		BusinessName:       req.BusinessName,
		Email:              req.Email,
		Phone:              req.Phone,
		Source:             req.Source,
		SourceDetail:       req.SourceDetail,
		ReferrerAccountID:  req.ReferrerAccountID,
		LOBInterest:        req.LOBInterest,
		EstimatedPremium:   req.EstimatedPremium,
		CurrentCarrier:     req.CurrentCarrier,
		AssignedProducerID: req.AssignedProducerID,
		Zip:                req.Zip,
		County:             req.County,
	}
	if req.CurrentExpiration != nil {
		d, err := parseDate(*req.CurrentExpiration)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.CurrentExpiration = d
	}

	prospect, err := h.prospectService.UpdateProspect(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prospect": prospect})
}

// UpdateStage moves a prospect through the pipeline
// @Summary     Update pipeline stage
// @Tags        prospects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Prospect ID"
// @Param       request body UpdateStageRequest true "New stage"
// @Success     200 {object} models.Prospect
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /prospects/{id}/stage [put]
func (h *ProspectHandler) UpdateStage(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	prospect, err := h.prospectService.UpdateProspectStage(actor, requestMeta(c), c.Param("id"), req.PipelineStage, req.CloseReason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prospect": prospect})
}

// ConvertProspect turns a prospect into an account
// @Summary     Convert a prospect
// @Description Create an account from a prospect. Succeeds exactly once.
// @Tags        prospects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Prospect ID"
// @Success     201 {object} models.Account
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already converted"
// @Router      /prospects/{id}/convert [post]
func (h *ProspectHandler) ConvertProspect(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.prospectService.ConvertProspect(actor, requestMeta(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}
