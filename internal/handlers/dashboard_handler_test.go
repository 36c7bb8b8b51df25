package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sentinel/internal/authz"
	"sentinel/internal/models"
	"sentinel/internal/services"
)

type mockDashboardService struct {
	getDashboardFn func(actor authz.Actor, now time.Time) (*services.Dashboard, error)
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func (m *mockDashboardService) GetDashboard(actor authz.Actor, now time.Time) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(actor, now)
	}
	return &services.Dashboard{}, nil
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("returns the snapshot for the acting user", func(t *testing.T) {
		var gotActor authz.Actor
		dashSvc := &mockDashboardService{
			getDashboardFn: func(actor authz.Actor, _ time.Time) (*services.Dashboard, error) {
				gotActor = actor
				return &services.Dashboard{
					TasksDueToday:      3,
					PipelineCount:      2,
					PipelineValue:      240000,
					RecentTasks:        []models.Task{},
					RecentServiceItems: []models.ServiceItem{},
				}, nil
			},
		}
		handler := NewDashboardHandler(dashSvc)
		r := gin.New()
		r.GET("/dashboard", injectActor("u-prod", models.RoleProducer), handler.GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotActor.ID != "u-prod" || gotActor.Role != models.RoleProducer {
			t.Errorf("expected producer actor passed through, got %+v", gotActor)
		}
		result := parseJSON(t, rec)
		if result["tasks_due_today"] != float64(3) {
			t.Errorf("expected tasks_due_today 3, got %v", result["tasks_due_today"])
		}
		if result["pipeline_value"] != float64(240000) {
			t.Errorf("expected pipeline_value 240000, got %v", result["pipeline_value"])
		}
		if result["recent_tasks"] == nil {
			t.Error("expected recent_tasks to be an empty array, not null")
		}
	})

	t.Run("returns 401 without actor context", func(t *testing.T) {
		handler := NewDashboardHandler(&mockDashboardService{})
		r := gin.New()
		r.GET("/dashboard", handler.GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
