package events

import (
	"context"
	"errors"
	"testing"
	"time"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/fixture"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/model"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{data: make(map[string]string)}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// brokenRevenueStore fails the revenue sub-query only.
type brokenRevenueStore struct {
	ports.Store
}

func (s brokenRevenueStore) SumRevenue(context.Context, ports.StatsFilter) (float64, int64, error) {
	return 0, 0, errors.New("payments table unavailable")
}

func TestAnalyticsOnlyRequestedMetrics(t *testing.T) {
	svc, _ := setupService(t)

	snapshot, err := svc.Analytics(context.Background(), AnalyticsInput{
		Metrics: []string{domainevents.MetricAttendance},
	})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if snapshot.Metrics.Attendance == nil {
		t.Fatal("attendance must be populated")
	}
	if snapshot.Metrics.Registrations != nil || snapshot.Metrics.Revenue != nil {
		t.Fatalf("unrequested metrics populated: %+v", snapshot.Metrics)
	}
}

func TestAnalyticsDefaultsToAllMetrics(t *testing.T) {
	svc, _ := setupService(t)

	snapshot, err := svc.Analytics(context.Background(), AnalyticsInput{})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if snapshot.Metrics.Registrations == nil || snapshot.Metrics.Revenue == nil || snapshot.Metrics.Attendance == nil {
		t.Fatalf("expected all metrics, got %+v", snapshot.Metrics)
	}
	if snapshot.Period.Start != "2025-01-01" {
		t.Fatalf("unexpected default period start %q", snapshot.Period.Start)
	}
	if snapshot.Period.End != "2025-05-01" {
		t.Fatalf("unexpected default period end %q", snapshot.Period.End)
	}
}

func TestAnalyticsRejectsUnknownMetric(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Analytics(context.Background(), AnalyticsInput{Metrics: []string{"sound_pressure"}})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("expected validation kind, got %v", err)
	}
}

func TestAnalyticsCountsScopedByEventAndWindow(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	regs := []model.Registration{
		{ID: "reg_1", EventID: "evt_001", CompetitorName: "A", Email: "a@e.com", Phone: "1", VehicleInfo: "{}", ClassID: "c", Status: "confirmed", CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "reg_2", EventID: "evt_001", CompetitorName: "B", Email: "b@e.com", Phone: "1", VehicleInfo: "{}", ClassID: "c", Status: "confirmed", CreatedAt: "2025-04-01T10:00:00Z"},
		{ID: "reg_3", EventID: "evt_002", CompetitorName: "C", Email: "c@e.com", Phone: "1", VehicleInfo: "{}", ClassID: "c", Status: "confirmed", CreatedAt: "2025-03-15T10:00:00Z"},
	}
	for _, row := range regs {
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed registration: %v", err)
		}
	}
	payments := []model.Payment{
		{ID: "pay_1", RegistrationID: "reg_1", Amount: 50, Currency: "USD", PaymentMethod: "stripe", Status: "succeeded", ProcessedAt: "2025-03-02T10:00:00Z"},
		{ID: "pay_2", RegistrationID: "reg_3", Amount: 60, Currency: "USD", PaymentMethod: "paypal", Status: "succeeded", ProcessedAt: "2025-03-16T10:00:00Z"},
		{ID: "pay_3", RegistrationID: "reg_2", Amount: 75, Currency: "USD", PaymentMethod: "stripe", Status: "failed", ProcessedAt: "2025-04-02T10:00:00Z"},
	}
	for _, row := range payments {
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	snapshot, err := svc.Analytics(ctx, AnalyticsInput{
		EventID:   "evt_001",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Metrics:   []string{"registrations", "revenue"},
	})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	// Only reg_1 is evt_001 within March.
	if snapshot.Metrics.Registrations.Total != 1 {
		t.Fatalf("expected 1 registration, got %d", snapshot.Metrics.Registrations.Total)
	}
	// Only pay_1 is succeeded, in March, and tied to evt_001.
	if snapshot.Metrics.Revenue.Total != 50 {
		t.Fatalf("expected revenue 50, got %v", snapshot.Metrics.Revenue.Total)
	}
	if snapshot.Metrics.Revenue.TransactionCount != 1 {
		t.Fatalf("expected 1 transaction, got %d", snapshot.Metrics.Revenue.TransactionCount)
	}
}

func TestAnalyticsDowngradesFailedMetricOnly(t *testing.T) {
	svc, _ := setupService(t)
	svc.store = brokenRevenueStore{Store: svc.store}

	snapshot, err := svc.Analytics(context.Background(), AnalyticsInput{
		Metrics: []string{"registrations", "revenue"},
	})
	if err != nil {
		t.Fatalf("analytics must not fail when one metric fails: %v", err)
	}

	if snapshot.Metrics.Revenue == nil || snapshot.Metrics.Revenue.Total != 0 {
		t.Fatalf("expected zero-valued revenue default, got %+v", snapshot.Metrics.Revenue)
	}
	if snapshot.Metrics.Registrations == nil {
		t.Fatal("healthy metric must still be populated")
	}
}

func TestAnalyticsServedFromCache(t *testing.T) {
	cacheDouble := newTestCache()
	svc := NewService(fixture.NewStore(), fixture.NewUnitOfWork(), cacheDouble)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	first, err := svc.Analytics(ctx, AnalyticsInput{Metrics: []string{"registrations"}})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(cacheDouble.data) != 1 {
		t.Fatalf("expected snapshot cached, got %d entries", len(cacheDouble.data))
	}

	// Second call with the same scope must hit the cache; break the store
	// to prove it is not consulted.
	svc.store = brokenRevenueStore{}
	second, err := svc.Analytics(ctx, AnalyticsInput{Metrics: []string{"registrations"}})
	if err != nil {
		t.Fatalf("cached analytics: %v", err)
	}
	if second.Metrics.Registrations.Total != first.Metrics.Registrations.Total {
		t.Fatalf("cache returned different snapshot: %+v vs %+v", second, first)
	}
}
