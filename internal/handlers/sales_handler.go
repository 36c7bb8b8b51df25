package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// SalesHandler handles sales log requests.
type SalesHandler struct {
	salesService services.SalesServicer
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(salesService services.SalesServicer) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// CreateSalesEntryRequest represents a logged sale. Premium is in cents.
type CreateSalesEntryRequest struct {
	Date           string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	AccountID      *string `json:"account_id" binding:"omitempty,uuid"`
	ProspectID     *string `json:"prospect_id" binding:"omitempty,uuid"`
	PolicyID       *string `json:"policy_id" binding:"omitempty,uuid"`
	LineOfBusiness string  `json:"line_of_business" binding:"required,max=100"`
	Premium        int64   `json:"premium" binding:"gte=0"`
	CarrierID      *string `json:"carrier_id" binding:"omitempty,uuid"`
	Source         string  `json:"source" binding:"omitempty,prospect_source"`
	SourceDetail   string  `json:"source_detail" binding:"max=200"`
	Zip            string  `json:"zip" binding:"max=10"`
	County         string  `json:"county" binding:"max=100"`
	SaleType       string  `json:"sale_type" binding:"required,sale_type"`
	Notes          string  `json:"notes" binding:"max=2000"`
}

// ListSales returns a page of the sales log
// @Summary     List sales log entries
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       date_from query string false "Start date (YYYY-MM-DD)"
// @Param       date_to query string false "End date (YYYY-MM-DD)"
// @Param       line_of_business query string false "Filter by LOB"
// @Param       sale_type query string false "Filter by sale type"
// @Param       source query string false "Filter by source"
// @Param       zip query string false "Filter by ZIP"
// @Param       county query string false "Filter by county"
// @Param       carrier_id query string false "Filter by carrier"
// @Param       producer_id query string false "Filter by producer"
// @Success     200 {object} pagination.PageResponse[models.SalesLogEntry]
// @Router      /sales-log [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := salesFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.salesService.GetEntries(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateSale logs a sale attributed to the acting user
// @Summary     Log a sale
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSalesEntryRequest true "Sale details"
// @Success     201 {object} models.SalesLogEntry
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /sales-log [post]
func (h *SalesHandler) CreateSale(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSalesEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.salesService.CreateEntry(actor, requestMeta(c), services.CreateSalesEntryInput{
		Date:           date,
		AccountID:      req.AccountID,
		ProspectID:     req.ProspectID,
		PolicyID:       req.PolicyID,
		LineOfBusiness: req.LineOfBusiness,
		Premium:        req.Premium,
		CarrierID:      req.CarrierID,
		Source:         req.Source,
		SourceDetail:   req.SourceDetail,
		Zip:            req.Zip,
		County:         req.County,
		SaleType:       req.SaleType,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetSummary returns the sales summary cards and quota block
// @Summary     Sales summary
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SalesSummary
// @Router      /sales-log/summary [get]
func (h *SalesHandler) GetSummary(c *gin.Context) {
	summary, err := h.salesService.GetSummary(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTrends returns bucketed trend data
// @Summary     Sales trends
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "daily, weekly or monthly" default(monthly)
// @Param       group_by query string false "lob, source, zip, county, carrier or sale_type" default(lob)
// @Param       date_from query string false "Start date (YYYY-MM-DD)"
// @Param       date_to query string false "End date (YYYY-MM-DD)"
// @Success     200 {array} services.TrendBucket
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /sales-log/trends [get]
func (h *SalesHandler) GetTrends(c *gin.Context) {
	period := services.TrendPeriod(c.DefaultQuery("period", "monthly"))
	switch period {
	case services.TrendDaily, services.TrendWeekly, services.TrendMonthly:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid period"))
		return
	}

	groupBy := services.TrendGroup(c.DefaultQuery("group_by", "lob"))
	switch groupBy {
	case services.GroupLOB, services.GroupSource, services.GroupZip,
		services.GroupCounty, services.GroupCarrier, services.GroupSaleType:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid group_by"))
		return
	}

	filter, err := salesFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trends, err := h.salesService.GetTrends(filter, period, groupBy)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends, "period": period, "group_by": groupBy})
}

func salesFilterFromQuery(c *gin.Context) (services.SalesFilter, error) {
	filter := services.SalesFilter{
		LineOfBusiness: c.Query("line_of_business"),
		SaleType:       c.Query("sale_type"),
		Source:         c.Query("source"),
		Zip:            c.Query("zip"),
		County:         c.Query("county"),
		CarrierID:      c.Query("carrier_id"),
		ProducerID:     c.Query("producer_id"),
	}

	from, err := parseDate(c.Query("date_from"))
	if err != nil {
		return filter, err
	}
	to, err := parseDate(c.Query("date_to"))
	if err != nil {
		return filter, err
	}
	filter.DateFrom = from
	filter.DateTo = to
	return filter, nil
}
