package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// Entries qualifying toward the monthly auto quota.
const (
	quotaLineOfBusiness = "Personal Auto"
)

var quotaSaleTypes = []string{models.SaleTypeNewBusiness, models.SaleTypeRewrite}

// CreateSalesEntryInput holds the fields accepted when logging a sale.
// The producer is always the acting user.
type CreateSalesEntryInput struct {
	Date           *time.Time
	AccountID      *string
	ProspectID     *string
	PolicyID       *string
	LineOfBusiness string
	Premium        int64
	CarrierID      *string
	Source         string
	SourceDetail   string
	Zip            string
	County         string
	SaleType       string
	Notes          string
}

// SalesFilter holds optional filter parameters for the sales log.
type SalesFilter struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	LineOfBusiness string
	SaleType       string
	Source         string
	Zip            string
	County         string
	CarrierID      string
	ProducerID     string
}

// PeriodStats is one summary card: count and premium cents over a window.
type PeriodStats struct {
	Count   int64 `json:"count"`
	Premium int64 `json:"premium"`
}

// QuotaStatus reports progress against the monthly auto quota. OnTrack uses a
// flat 30-day pro-ration of the target, not the calendar month length.
type QuotaStatus struct {
	AutoItemsThisMonth int64 `json:"auto_items_this_month"`
	Target             int   `json:"target"`
	Remaining          int64 `json:"remaining"`
	OnTrack            bool  `json:"on_track"`
}

// SalesSummary is the response of the summary endpoint.
type SalesSummary struct {
	Today     PeriodStats `json:"today"`
	ThisWeek  PeriodStats `json:"this_week"`
	ThisMonth PeriodStats `json:"this_month"`
	YTD       PeriodStats `json:"ytd"`
	Quota     QuotaStatus `json:"quota"`
}

// TrendPeriod selects the time bucketing for trend queries.
type TrendPeriod string

const (
	TrendDaily   TrendPeriod = "daily"
	TrendWeekly  TrendPeriod = "weekly"
	TrendMonthly TrendPeriod = "monthly"
)

// TrendGroup selects the grouping dimension for trend queries.
type TrendGroup string

const (
	GroupLOB      TrendGroup = "lob"
	GroupSource   TrendGroup = "source"
	GroupZip      TrendGroup = "zip"
	GroupCounty   TrendGroup = "county"
	GroupCarrier  TrendGroup = "carrier"
	GroupSaleType TrendGroup = "sale_type"
)

// TrendBucket is one (period, group) cell of a trend query.
type TrendBucket struct {
	Period  string `json:"period"`
	Group   string `json:"group"`
	Count   int64  `json:"count"`
	Premium int64  `json:"premium"`
}

// salesService handles the sales log and its reporting.
type salesService struct {
	db    *gorm.DB
	quota int
}

// NewSalesService creates a new SalesServicer with the monthly auto quota
// from configuration.
func NewSalesService(db *gorm.DB, monthlyAutoQuota int) SalesServicer {
	return &salesService{db: db, quota: monthlyAutoQuota}
}

// CreateEntry logs a sale attributed to the acting user.
func (s *salesService) CreateEntry(actor authz.Actor, meta audit.RequestMeta, input CreateSalesEntryInput) (*models.SalesLogEntry, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntitySalesLogEntry); err != nil {
		return nil, err
	}
	if input.LineOfBusiness == "" || input.SaleType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "line of business and sale type are required")
	}

	entryDate := input.Date
	if entryDate == nil {
		d := today(time.Now())
		entryDate = &d
	}

	entry := &models.SalesLogEntry{
		Date:           entryDate,
		AccountID:      input.AccountID,
		ProspectID:     input.ProspectID,
		PolicyID:       input.PolicyID,
		LineOfBusiness: input.LineOfBusiness,
		Premium:        input.Premium,
		CarrierID:      input.CarrierID,
		ProducerID:     &actor.ID,
		Source:         input.Source,
		SourceDetail:   input.SourceDetail,
		Zip:            input.Zip,
		County:         input.County,
		SaleType:       input.SaleType,
		Notes:          input.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntitySalesLogEntry, entry.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntries retrieves a paginated, filtered slice of the sales log.
func (s *salesService) GetEntries(page pagination.PageRequest, filter SalesFilter) (*pagination.PageResponse[models.SalesLogEntry], error) {
	page.Defaults()

	base := s.filtered(filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.SalesLogEntry
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSummary assembles the summary cards and quota block relative to now.
// The week card runs from Monday of the current week; month from the first;
// YTD from January 1.
func (s *salesService) GetSummary(now time.Time) (*SalesSummary, error) {
	day := today(now)
	weekStart := day.AddDate(0, 0, -mondayOffset(day))
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	summary := &SalesSummary{}
	var err error
	if summary.Today, err = s.periodStats(day, &day); err != nil {
		return nil, err
	}
	if summary.ThisWeek, err = s.periodStats(weekStart, nil); err != nil {
		return nil, err
	}
	if summary.ThisMonth, err = s.periodStats(monthStart, nil); err != nil {
		return nil, err
	}
	if summary.YTD, err = s.periodStats(yearStart, nil); err != nil {
		return nil, err
	}

	var autoItems int64
	q := s.db.Model(&models.SalesLogEntry{}).
		Where("date >= ?", monthStart).
		Where("line_of_business = ?", quotaLineOfBusiness).
		Where("sale_type IN ?", quotaSaleTypes)
	if err := q.Count(&autoItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	remaining := int64(s.quota) - autoItems
	if remaining < 0 {
		remaining = 0
	}
	summary.Quota = QuotaStatus{
		AutoItemsThisMonth: autoItems,
		Target:             s.quota,
		Remaining:          remaining,
		// Flat 30-day pro-ration regardless of month length.
		OnTrack: float64(autoItems) >= float64(s.quota)*float64(day.Day())/30.0,
	}

	return summary, nil
}

// GetTrends buckets entries by period and grouping dimension. Filtering
// happens in SQL; bucketing happens here so postgres and the sqlite test
// database behave identically.
func (s *salesService) GetTrends(filter SalesFilter, period TrendPeriod, groupBy TrendGroup) ([]TrendBucket, error) {
	if filter.DateFrom == nil {
		now := today(time.Now())
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		filter.DateFrom = &start
	}
	if filter.DateTo == nil {
		end := today(time.Now())
		filter.DateTo = &end
	}

	var entries []models.SalesLogEntry
	if err := s.filtered(filter).Order("date").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type key struct {
		period string
		group  string
	}
	cells := make(map[key]*TrendBucket)
	for i := range entries {
		e := &entries[i]
		k := key{period: bucketPeriod(period, e.Date), group: groupKey(groupBy, e)}
		cell, ok := cells[k]
		if !ok {
			cell = &TrendBucket{Period: k.period, Group: k.group}
			cells[k] = cell
		}
		cell.Count++
		cell.Premium += e.Premium
	}

	buckets := make([]TrendBucket, 0, len(cells))
	for _, cell := range cells {
		buckets = append(buckets, *cell)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Period != buckets[j].Period {
			return buckets[i].Period < buckets[j].Period
		}
		return buckets[i].Group < buckets[j].Group
	})
	return buckets, nil
}

func (s *salesService) filtered(filter SalesFilter) *gorm.DB {
	q := s.db.Model(&models.SalesLogEntry{})
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}
	if filter.LineOfBusiness != "" {
		q = q.Where("line_of_business = ?", filter.LineOfBusiness)
	}
	if filter.SaleType != "" {
		q = q.Where("sale_type = ?", filter.SaleType)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}
	if filter.Zip != "" {
		q = q.Where("zip = ?", filter.Zip)
	}
	if filter.County != "" {
		q = q.Where("county LIKE ?", "%"+filter.County+"%")
	}
	if filter.CarrierID != "" {
		q = q.Where("carrier_id = ?", filter.CarrierID)
	}
	if filter.ProducerID != "" {
		q = q.Where("producer_id = ?", filter.ProducerID)
	}
	return q
}

func (s *salesService) periodStats(from time.Time, to *time.Time) (PeriodStats, error) {
	var stats PeriodStats
	q := s.db.Model(&models.SalesLogEntry{}).Where("date >= ?", from)
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	row := struct {
		Count   int64
		Premium int64
	}{}
	if err := q.Select("COUNT(id) AS count, COALESCE(SUM(premium), 0) AS premium").Scan(&row).Error; err != nil {
		return stats, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stats.Count = row.Count
	stats.Premium = row.Premium
	return stats, nil
}

// today truncates a time to its UTC calendar date.
func today(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOffset returns the number of days since the most recent Monday.
func mondayOffset(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

func bucketPeriod(period TrendPeriod, date *time.Time) string {
	if date == nil {
		return ""
	}
	d := date.UTC()
	switch period {
	case TrendDaily:
		return d.Format("2006-01-02")
	case TrendWeekly:
		start := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		return start.Format("2006-01-02")
	default:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
}

func groupKey(groupBy TrendGroup, e *models.SalesLogEntry) string {
	var key string
	switch groupBy {
	case GroupSource:
		key = e.Source
	case GroupZip:
		key = e.Zip
	case GroupCounty:
		key = e.County
	case GroupCarrier:
		if e.CarrierID != nil {
			key = *e.CarrierID
		}
	case GroupSaleType:
		key = e.SaleType
	default:
		key = e.LineOfBusiness
	}
	if key == "" {
		return "Unknown"
	}
	return key
}
