package services

import (
	"testing"
	"time"

	"sentinel/internal/models"
	"sentinel/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateSalesEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSalesService(db, 13)
	producer := testutil.CreateTestUser(t, db, models.RoleProducer)

	entry, err := svc.CreateEntry(actorFor(producer), testMeta(), CreateSalesEntryInput{
		LineOfBusiness: "Personal Auto",
		SaleType:       models.SaleTypeNewBusiness,
		Premium:        145000,
	})
	testutil.AssertNoError(t, err)

	if entry.ProducerID == nil || *entry.ProducerID != producer.ID {
		t.Error("entry producer should be the acting user")
	}
	if entry.Date == nil {
		t.Error("omitted date should default to today")
	}
	if n := countAuditEntries(db, entry.ID); n != 1 {
		t.Errorf("expected 1 create audit entry, got %d", n)
	}

	_, err = svc.CreateEntry(actorFor(producer), testMeta(), CreateSalesEntryInput{SaleType: models.SaleTypeRenewal})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSalesService(db, 13)

	// Fixed clock: Wednesday June 10, 2026. The week card starts Monday
	// June 8, the month card June 1, YTD January 1.
	now := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)

	testutil.CreateTestSale(t, db, date(2026, 6, 10), "Personal Auto", models.SaleTypeNewBusiness, 100000)
	testutil.CreateTestSale(t, db, date(2026, 6, 9), "Personal Auto", models.SaleTypeRewrite, 110000)
	testutil.CreateTestSale(t, db, date(2026, 6, 8), "Personal Auto", models.SaleTypeNewBusiness, 120000)
	testutil.CreateTestSale(t, db, date(2026, 6, 5), "Personal Auto", models.SaleTypeNewBusiness, 130000)
	testutil.CreateTestSale(t, db, date(2026, 6, 2), "Personal Auto", models.SaleTypeRewrite, 140000)
	// Auto but non-qualifying sale type.
	testutil.CreateTestSale(t, db, date(2026, 6, 3), "Personal Auto", models.SaleTypeRenewal, 50000)
	// Qualifying type, wrong line of business.
	testutil.CreateTestSale(t, db, date(2026, 6, 4), "Homeowners", models.SaleTypeNewBusiness, 200000)
	// Prior month, counts toward YTD only.
	testutil.CreateTestSale(t, db, date(2026, 5, 20), "Personal Auto", models.SaleTypeNewBusiness, 90000)
	// Prior year, outside every card.
	testutil.CreateTestSale(t, db, date(2025, 12, 30), "Personal Auto", models.SaleTypeNewBusiness, 80000)

	summary, err := svc.GetSummary(now)
	testutil.AssertNoError(t, err)

	if summary.Today.Count != 1 || summary.Today.Premium != 100000 {
		t.Errorf("today card: %+v", summary.Today)
	}
	if summary.ThisWeek.Count != 3 || summary.ThisWeek.Premium != 330000 {
		t.Errorf("week card: %+v", summary.ThisWeek)
	}
	if summary.ThisMonth.Count != 7 {
		t.Errorf("month card: %+v", summary.ThisMonth)
	}
	if summary.YTD.Count != 8 {
		t.Errorf("ytd card: %+v", summary.YTD)
	}

	// 5 qualifying auto items by day 10 against a quota of 13. The flat
	// 30-day pro-rated target is 13*10/30 = 4.33, so 5 is on track.
	q := summary.Quota
	if q.AutoItemsThisMonth != 5 {
		t.Errorf("expected 5 qualifying auto items, got %d", q.AutoItemsThisMonth)
	}
	if q.Target != 13 {
		t.Errorf("expected target 13, got %d", q.Target)
	}
	if q.Remaining != 8 {
		t.Errorf("expected 8 remaining, got %d", q.Remaining)
	}
	if !q.OnTrack {
		t.Error("5 items by day 10 should be on track")
	}
}

func TestGetSummaryQuotaFloorsAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSalesService(db, 2)

	now := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		testutil.CreateTestSale(t, db, date(2026, 6, 9), "Personal Auto", models.SaleTypeNewBusiness, 100000)
	}

	summary, err := svc.GetSummary(now)
	testutil.AssertNoError(t, err)
	if summary.Quota.Remaining != 0 {
		t.Errorf("remaining never goes negative, got %d", summary.Quota.Remaining)
	}
	if !summary.Quota.OnTrack {
		t.Error("over quota is always on track")
	}
}

func TestGetTrends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSalesService(db, 13)

	testutil.CreateTestSale(t, db, date(2026, 1, 5), "Personal Auto", models.SaleTypeNewBusiness, 100000)
	testutil.CreateTestSale(t, db, date(2026, 1, 20), "Personal Auto", models.SaleTypeNewBusiness, 110000)
	testutil.CreateTestSale(t, db, date(2026, 1, 12), "Homeowners", models.SaleTypeNewBusiness, 200000)
	testutil.CreateTestSale(t, db, date(2026, 2, 3), "Personal Auto", models.SaleTypeRewrite, 120000)
	// Blank line of business lands in the Unknown group.
	blank := testutil.CreateTestSale(t, db, date(2026, 2, 10), "x", models.SaleTypeRenewal, 5000)
	db.Model(blank).Update("line_of_business", "")

	from := date(2026, 1, 1)
	to := date(2026, 12, 31)

	t.Run("monthly_by_lob", func(t *testing.T) {
		buckets, err := svc.GetTrends(SalesFilter{DateFrom: &from, DateTo: &to}, TrendMonthly, GroupLOB)
		testutil.AssertNoError(t, err)

		want := []TrendBucket{
			{Period: "2026-01-01", Group: "Homeowners", Count: 1, Premium: 200000},
			{Period: "2026-01-01", Group: "Personal Auto", Count: 2, Premium: 210000},
			{Period: "2026-02-01", Group: "Personal Auto", Count: 1, Premium: 120000},
			{Period: "2026-02-01", Group: "Unknown", Count: 1, Premium: 5000},
		}
		if len(buckets) != len(want) {
			t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(buckets), buckets)
		}
		for i, w := range want {
			if buckets[i] != w {
				t.Errorf("bucket %d: got %+v, want %+v", i, buckets[i], w)
			}
		}
	})

	t.Run("weekly_buckets_start_monday", func(t *testing.T) {
		buckets, err := svc.GetTrends(SalesFilter{DateFrom: &from, DateTo: &to, LineOfBusiness: "Personal Auto"}, TrendWeekly, GroupLOB)
		testutil.AssertNoError(t, err)

		// Jan 5 2026 is a Monday; Jan 20 is a Tuesday in the week of Jan 19.
		periods := make(map[string]bool)
		for _, b := range buckets {
			periods[b.Period] = true
		}
		for _, want := range []string{"2026-01-05", "2026-01-19", "2026-02-02"} {
			if !periods[want] {
				t.Errorf("missing weekly bucket %s: %+v", want, buckets)
			}
		}
	})

	t.Run("daily_with_filter", func(t *testing.T) {
		buckets, err := svc.GetTrends(SalesFilter{DateFrom: &from, DateTo: &to, SaleType: models.SaleTypeRewrite}, TrendDaily, GroupSaleType)
		testutil.AssertNoError(t, err)
		if len(buckets) != 1 || buckets[0].Period != "2026-02-03" || buckets[0].Group != models.SaleTypeRewrite {
			t.Errorf("unexpected buckets: %+v", buckets)
		}
	})
}
