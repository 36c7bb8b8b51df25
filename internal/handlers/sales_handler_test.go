package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

type mockSalesService struct {
	createEntryFn func(actor authz.Actor, input services.CreateSalesEntryInput) (*models.SalesLogEntry, error)
	getEntriesFn  func(page pagination.PageRequest, filter services.SalesFilter) (*pagination.PageResponse[models.SalesLogEntry], error)
	getSummaryFn  func(now time.Time) (*services.SalesSummary, error)
	getTrendsFn   func(filter services.SalesFilter, period services.TrendPeriod, groupBy services.TrendGroup) ([]services.TrendBucket, error)
}

var _ services.SalesServicer = (*mockSalesService)(nil)

func (m *mockSalesService) CreateEntry(actor authz.Actor, _ audit.RequestMeta, input services.CreateSalesEntryInput) (*models.SalesLogEntry, error) {
	if m.createEntryFn != nil {
		return m.createEntryFn(actor, input)
	}
	return &models.SalesLogEntry{}, nil
}

func (m *mockSalesService) GetEntries(page pagination.PageRequest, filter services.SalesFilter) (*pagination.PageResponse[models.SalesLogEntry], error) {
	if m.getEntriesFn != nil {
		return m.getEntriesFn(page, filter)
	}
	resp := pagination.NewPageResponse[models.SalesLogEntry](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockSalesService) GetSummary(now time.Time) (*services.SalesSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(now)
	}
	return &services.SalesSummary{}, nil
}

func (m *mockSalesService) GetTrends(filter services.SalesFilter, period services.TrendPeriod, groupBy services.TrendGroup) ([]services.TrendBucket, error) {
	if m.getTrendsFn != nil {
		return m.getTrendsFn(filter, period, groupBy)
	}
	return []services.TrendBucket{}, nil
}

func setupSalesRouter(handler *SalesHandler, actorID string, role models.Role) *gin.Engine {
	r := gin.New()
	grp := r.Group("/sales-log", injectActor(actorID, role))
	grp.GET("", handler.ListSales)
	grp.POST("", handler.CreateSale)
	grp.GET("/summary", handler.GetSummary)
	grp.GET("/trends", handler.GetTrends)
	return r
}

func TestSalesHandler_CreateSale(t *testing.T) {
	t.Run("returns 201 and parses the sale date", func(t *testing.T) {
		var gotInput services.CreateSalesEntryInput
		salesSvc := &mockSalesService{
			createEntryFn: func(_ authz.Actor, input services.CreateSalesEntryInput) (*models.SalesLogEntry, error) {
				gotInput = input
				return &models.SalesLogEntry{Base: models.Base{ID: "sl-1"}, LineOfBusiness: input.LineOfBusiness}, nil
			},
		}
		handler := NewSalesHandler(salesSvc)
		r := setupSalesRouter(handler, "u-1", models.RoleProducer)

		rec := doRequest(r, "POST", "/sales-log",
			`{"date":"2026-08-14","line_of_business":"Personal Auto","premium":120000,"sale_type":"New Business"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.Date == nil || gotInput.Date.Format("2006-01-02") != "2026-08-14" {
			t.Errorf("expected parsed date 2026-08-14, got %v", gotInput.Date)
		}
		entry := parseJSON(t, rec)["entry"].(map[string]interface{})
		if entry["line_of_business"] != "Personal Auto" {
			t.Errorf("expected LOB Personal Auto, got %v", entry["line_of_business"])
		}
	})

	t.Run("returns 400 on missing line of business", func(t *testing.T) {
		handler := NewSalesHandler(&mockSalesService{})
		r := setupSalesRouter(handler, "u-1", models.RoleProducer)

		rec := doRequest(r, "POST", "/sales-log", `{"premium":120000,"sale_type":"New Business"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown sale type", func(t *testing.T) {
		handler := NewSalesHandler(&mockSalesService{})
		r := setupSalesRouter(handler, "u-1", models.RoleProducer)

		rec := doRequest(r, "POST", "/sales-log",
			`{"line_of_business":"Personal Auto","sale_type":"Giveaway"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSalesHandler_ListSales(t *testing.T) {
	t.Run("parses date range filters", func(t *testing.T) {
		var gotFilter services.SalesFilter
		salesSvc := &mockSalesService{
			getEntriesFn: func(_ pagination.PageRequest, filter services.SalesFilter) (*pagination.PageResponse[models.SalesLogEntry], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse[models.SalesLogEntry](nil, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewSalesHandler(salesSvc)
		r := setupSalesRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/sales-log?date_from=2026-01-01&date_to=2026-06-30&sale_type=Rewrite", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.DateFrom == nil || gotFilter.DateFrom.Format("2006-01-02") != "2026-01-01" {
			t.Errorf("expected date_from 2026-01-01, got %v", gotFilter.DateFrom)
		}
		if gotFilter.DateTo == nil || gotFilter.DateTo.Format("2006-01-02") != "2026-06-30" {
			t.Errorf("expected date_to 2026-06-30, got %v", gotFilter.DateTo)
		}
		if gotFilter.SaleType != "Rewrite" {
			t.Errorf("expected sale_type Rewrite, got %q", gotFilter.SaleType)
		}
	})

	t.Run("returns 400 on malformed date filter", func(t *testing.T) {
		handler := NewSalesHandler(&mockSalesService{})
		r := setupSalesRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/sales-log?date_from=June+1st", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSalesHandler_GetSummary(t *testing.T) {
	salesSvc := &mockSalesService{
		getSummaryFn: func(_ time.Time) (*services.SalesSummary, error) {
			return &services.SalesSummary{
				Today: services.PeriodStats{Count: 2, Premium: 250000},
				Quota: services.QuotaStatus{AutoItemsThisMonth: 5, Target: 13, Remaining: 8, OnTrack: true},
			}, nil
		},
	}
	handler := NewSalesHandler(salesSvc)
	r := setupSalesRouter(handler, "u-1", models.RoleCSR)

	rec := doRequest(r, "GET", "/sales-log/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	today := result["today"].(map[string]interface{})
	if today["count"] != float64(2) {
		t.Errorf("expected today count 2, got %v", today["count"])
	}
	quota := result["quota"].(map[string]interface{})
	if quota["on_track"] != true {
		t.Errorf("expected on_track true, got %v", quota["on_track"])
	}
}

func TestSalesHandler_GetTrends(t *testing.T) {
	t.Run("defaults to monthly by lob", func(t *testing.T) {
		var gotPeriod services.TrendPeriod
		var gotGroup services.TrendGroup
		salesSvc := &mockSalesService{
			getTrendsFn: func(_ services.SalesFilter, period services.TrendPeriod, groupBy services.TrendGroup) ([]services.TrendBucket, error) {
				gotPeriod = period
				gotGroup = groupBy
				return []services.TrendBucket{{Period: "2026-06", Group: "Personal Auto", Count: 3, Premium: 360000}}, nil
			},
		}
		handler := NewSalesHandler(salesSvc)
		r := setupSalesRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/sales-log/trends", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPeriod != services.TrendMonthly || gotGroup != services.GroupLOB {
			t.Errorf("expected monthly/lob defaults, got %v/%v", gotPeriod, gotGroup)
		}
		trends := parseJSON(t, rec)["trends"].([]interface{})
		if len(trends) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(trends))
		}
	})

	t.Run("returns 400 on unknown period", func(t *testing.T) {
		handler := NewSalesHandler(&mockSalesService{})
		r := setupSalesRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/sales-log/trends?period=hourly", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown group_by", func(t *testing.T) {
		handler := NewSalesHandler(&mockSalesService{})
		r := setupSalesRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/sales-log/trends?group_by=weather", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
