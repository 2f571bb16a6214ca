package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/model"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Event{},
		&model.Registration{},
		&model.Payment{},
		&model.CheckIn{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return NewStore(db)
}

func TestSumRevenueBareEndDateCoversWholeDay(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	payments := []model.Payment{
		{
			ID:             "pay_last_second",
			RegistrationID: "reg_001",
			Amount:         25,
			Currency:       "USD",
			PaymentMethod:  "card",
			Status:         domainevents.PaymentSucceeded,
			ProcessedAt:    "2025-06-15T23:59:59.750Z",
		},
		{
			ID:             "pay_next_day",
			RegistrationID: "reg_002",
			Amount:         40,
			Currency:       "USD",
			PaymentMethod:  "card",
			Status:         domainevents.PaymentSucceeded,
			ProcessedAt:    "2025-06-16T00:00:00Z",
		},
	}
	for _, payment := range payments {
		if err := store.db.Create(&payment).Error; err != nil {
			t.Fatalf("seed payment %s: %v", payment.ID, err)
		}
	}

	total, transactions, err := store.SumRevenue(ctx, ports.StatsFilter{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-15",
	})
	if err != nil {
		t.Fatalf("sum revenue: %v", err)
	}
	if total != 25 || transactions != 1 {
		t.Fatalf("expected the sub-second payment only (25/1), got %v/%d", total, transactions)
	}
}

func TestCountCheckInsBareEndDateCoversWholeDay(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	checkIns := []model.CheckIn{
		{ID: "chk_in_window", EventID: "evt_001", RegistrationID: "reg_001", CheckedInAt: "2025-06-15T23:59:59.5Z"},
		{ID: "chk_next_day", EventID: "evt_001", RegistrationID: "reg_002", CheckedInAt: "2025-06-16T08:00:00Z"},
	}
	for _, checkIn := range checkIns {
		if err := store.db.Create(&checkIn).Error; err != nil {
			t.Fatalf("seed check-in %s: %v", checkIn.ID, err)
		}
	}

	total, err := store.CountCheckIns(ctx, ports.StatsFilter{
		EventID: "evt_001",
		EndDate: "2025-06-15",
	})
	if err != nil {
		t.Fatalf("count check-ins: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 check-in inside the window, got %d", total)
	}
}

func TestEndDateScope(t *testing.T) {
	for _, tt := range []struct {
		endDate   string
		wantCond  string
		wantBound string
	}{
		{"2025-06-15", "processed_at < ?", "2025-06-16"},
		{"2025-06-30", "processed_at < ?", "2025-07-01"},
		{"2025-12-31", "processed_at < ?", "2026-01-01"},
		{"2025-06-15T12:00:00Z", "processed_at <= ?", "2025-06-15T12:00:00Z"},
	} {
		cond, bound := endDateScope("processed_at", tt.endDate)
		if cond != tt.wantCond || bound != tt.wantBound {
			t.Fatalf("endDateScope(%q): got %q/%q, want %q/%q", tt.endDate, cond, bound, tt.wantCond, tt.wantBound)
		}
	}
}
