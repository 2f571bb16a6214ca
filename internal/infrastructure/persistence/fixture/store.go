// Package fixture implements ports.Store without a database. It is the
// permanent fallback selected at startup when no database is configured:
// list and analytics operations serve deterministic seeded data, create
// operations echo the submitted record without persisting anything.
package fixture

import (
	"context"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

const defaultListLimit = 10

// Seeded aggregate figures served by the analytics sub-queries.
const (
	seedRegistrationTotal = 156
	seedRevenueTotal      = 15600.00
	seedTransactionCount  = 156
	seedCheckInTotal      = 145
)

type Store struct{}

var _ ports.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// SampleEvents returns the two seeded events. init-db --seed inserts the
// same records into the live store so both modes answer list queries
// consistently.
func SampleEvents() []domainevents.Event {
	return []domainevents.Event{
		{
			ID:             "evt_001",
			Name:           "Summer Bass Championship 2025",
			EventType:      domainevents.TypeSPL,
			StartDate:      "2025-06-15",
			EndDate:        "2025-06-16",
			Location:       "Miami, FL",
			VenueName:      "Miami Convention Center",
			MaxCompetitors: 200,
			EarlyBirdPrice: 50,
			RegularPrice:   75,
			Status:         domainevents.StatusPublished,
			Registrations:  45,
			CreatedAt:      "2025-01-10T09:00:00Z",
			UpdatedAt:      "2025-01-10T09:00:00Z",
		},
		{
			ID:             "evt_002",
			Name:           "SQ Masters Series",
			EventType:      domainevents.TypeSQ,
			StartDate:      "2025-07-20",
			EndDate:        "2025-07-20",
			Location:       "Atlanta, GA",
			VenueName:      "Georgia World Congress Center",
			MaxCompetitors: 100,
			EarlyBirdPrice: 40,
			RegularPrice:   60,
			Status:         domainevents.StatusPublished,
			Registrations:  32,
			CreatedAt:      "2025-02-01T09:00:00Z",
			UpdatedAt:      "2025-02-01T09:00:00Z",
		},
	}
}

func sampleRegistrations() []domainevents.Registration {
	return []domainevents.Registration{
		{
			ID:             "reg_001",
			EventID:        "evt_001",
			CompetitorName: "John Doe",
			Email:          "john.doe@example.com",
			Phone:          "+1-305-555-0101",
			VehicleInfo:    map[string]any{"make": "Chevrolet", "model": "Silverado", "year": 2021},
			ClassID:        "spl-street-1",
			Status:         domainevents.RegistrationConfirmed,
			CreatedAt:      "2025-03-05T14:30:00Z",
		},
	}
}

func (s *Store) CreateEvent(_ context.Context, event domainevents.Event) (domainevents.Event, error) {
	return event, nil
}

func (s *Store) ListEvents(_ context.Context, filter ports.EventFilter) ([]domainevents.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	out := make([]domainevents.Event, 0, 2)
	for _, event := range SampleEvents() {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		if filter.EventType != "" && event.EventType != filter.EventType {
			continue
		}
		out = append(out, event)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (domainevents.Event, error) {
	for _, event := range SampleEvents() {
		if event.ID == eventID {
			return event, nil
		}
	}
	return domainevents.Event{}, ports.ErrEventNotFound
}

func (s *Store) CreateRegistration(_ context.Context, reg domainevents.Registration) (domainevents.Registration, error) {
	return reg, nil
}

func (s *Store) ListRegistrations(_ context.Context, filter ports.RegistrationFilter) ([]domainevents.Registration, error) {
	out := make([]domainevents.Registration, 0, 1)
	for _, reg := range sampleRegistrations() {
		if filter.EventID != "" && reg.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && reg.Status != filter.Status {
			continue
		}
		out = append(out, reg)
	}
	return out, nil
}

func (s *Store) ConfirmRegistration(_ context.Context, _ string) error {
	return nil
}

func (s *Store) CreatePayment(_ context.Context, payment domainevents.Payment) (domainevents.Payment, error) {
	return payment, nil
}

func (s *Store) CreateTicket(_ context.Context, ticket domainevents.SupportTicket) (domainevents.SupportTicket, error) {
	return ticket, nil
}

func (s *Store) CountRegistrations(_ context.Context, _ ports.StatsFilter) (int64, error) {
	return seedRegistrationTotal, nil
}

func (s *Store) SumRevenue(_ context.Context, _ ports.StatsFilter) (float64, int64, error) {
	return seedRevenueTotal, seedTransactionCount, nil
}

func (s *Store) CountCheckIns(_ context.Context, _ ports.StatsFilter) (int64, error) {
	return seedCheckInTotal, nil
}
