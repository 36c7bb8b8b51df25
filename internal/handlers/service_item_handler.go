package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// ServiceItemHandler handles service board requests.
type ServiceItemHandler struct {
	serviceItemService services.ServiceItemServicer
}

// NewServiceItemHandler creates a new ServiceItemHandler.
func NewServiceItemHandler(serviceItemService services.ServiceItemServicer) *ServiceItemHandler {
	return &ServiceItemHandler{serviceItemService: serviceItemService}
}

// CreateServiceItemRequest represents a new service board item.
type CreateServiceItemRequest struct {
	Type        string  `json:"type" binding:"required,service_item_type"`
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	PolicyID    *string `json:"policy_id" binding:"omitempty,uuid"`
	Description string  `json:"description" binding:"max=2000"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Urgency     string  `json:"urgency" binding:"omitempty,service_item_urgency"`
}

// UpdateServiceItemRequest represents a partial service item update.
type UpdateServiceItemRequest struct {
	Type        *string `json:"type" binding:"omitempty,service_item_type"`
	PolicyID    *string `json:"policy_id" binding:"omitempty,uuid"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty,service_item_status"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Urgency     *string `json:"urgency" binding:"omitempty,service_item_urgency"`
}

// ServiceBoardResponse is a page of service items plus the board header
// counts over non-terminal items.
type ServiceBoardResponse struct {
	pagination.PageResponse[models.ServiceItem]
	CountsByStatus map[string]int64 `json:"counts_by_status"`
	CountsByType   map[string]int64 `json:"counts_by_type"`
}

// ListServiceItems returns a page of the service board with header counts
// @Summary     List service items
// @Tags        service-board
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       account_id query string false "Filter by account"
// @Param       status query string false "Filter by status"
// @Param       type query string false "Filter by type"
// @Param       assigned_to query string false "Filter by assignee"
// @Param       open query bool false "Only non-terminal items"
// @Success     200 {object} ServiceBoardResponse
// @Router      /service-board [get]
func (h *ServiceItemHandler) ListServiceItems(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ServiceItemFilter{
		AccountID:  c.Query("account_id"),
		AssignedTo: c.Query("assigned_to"),
		Open:       c.Query("open") == "true",
	}
	if v := c.Query("status"); v != "" {
		status := models.ServiceItemStatus(v)
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		itemType := models.ServiceItemType(v)
		filter.Type = &itemType
	}

	result, err := h.serviceItemService.GetServiceItems(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	counts, err := h.serviceItemService.GetBoardCounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ServiceBoardResponse{
		PageResponse:   *result,
		CountsByStatus: counts.ByStatus,
		CountsByType:   counts.ByType,
	})
}

// CreateServiceItem opens a service board item
// @Summary     Create a service item
// @Tags        service-board
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateServiceItemRequest true "Item details"
// @Success     201 {object} models.ServiceItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /service-board [post]
func (h *ServiceItemHandler) CreateServiceItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.serviceItemService.CreateServiceItem(actor, requestMeta(c), services.CreateServiceItemInput{
		Type:        models.ServiceItemType(req.Type),
		AccountID:   req.AccountID,
		PolicyID:    req.PolicyID,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     due,
		Urgency:     models.ServiceItemUrgency(req.Urgency),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service_item": item})
}

// GetServiceItem returns one service item
// @Summary     Get a service item
// @Tags        service-board
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service item ID"
// @Success     200 {object} models.ServiceItem
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /service-board/{id} [get]
func (h *ServiceItemHandler) GetServiceItem(c *gin.Context) {
	item, err := h.serviceItemService.GetServiceItemByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_item": item})
}

// UpdateServiceItem applies a partial update
// @Summary     Update a service item
// @Tags        service-board
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service item ID"
// @Param       request body UpdateServiceItemRequest true "Fields to update"
// @Success     200 {object} models.ServiceItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /service-board/{id} [put]
func (h *ServiceItemHandler) UpdateServiceItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ServiceItemUpdateFields{
		PolicyID:    req.PolicyID,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.Type != nil {
		itemType := models.ServiceItemType(*req.Type)
		fields.Type = &itemType
	}
	if req.Status != nil {
		status := models.ServiceItemStatus(*req.Status)
		fields.Status = &status
	}
	if req.Urgency != nil {
		urgency := models.ServiceItemUrgency(*req.Urgency)
		fields.Urgency = &urgency
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.DueDate = d
	}

	item, err := h.serviceItemService.UpdateServiceItem(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_item": item})
}
