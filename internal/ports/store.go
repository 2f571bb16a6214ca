package ports

import (
	"context"
	"errors"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// EventFilter narrows ListEvents. Zero values mean "no filter";
// a zero Limit falls back to the store default of 10.
type EventFilter struct {
	Status    string
	EventType string
	Limit     int
}

// RegistrationFilter narrows ListRegistrations.
type RegistrationFilter struct {
	EventID string
	Status  string
}

// StatsFilter scopes an analytics sub-query. Date bounds are inclusive
// and compared against the record's timestamp column; empty strings
// leave the bound open.
type StatsFilter struct {
	EventID   string
	StartDate string
	EndDate   string
}

// Store is the data-access surface for the platform. It has two
// implementations chosen once at construction: the sqlite-backed live
// store and the fixture store used when no database is configured.
type Store interface {
	CreateEvent(ctx context.Context, event domainevents.Event) (domainevents.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]domainevents.Event, error)
	GetEvent(ctx context.Context, eventID string) (domainevents.Event, error)

	CreateRegistration(ctx context.Context, reg domainevents.Registration) (domainevents.Registration, error)
	ListRegistrations(ctx context.Context, filter RegistrationFilter) ([]domainevents.Registration, error)
	ConfirmRegistration(ctx context.Context, registrationID string) error

	CreatePayment(ctx context.Context, payment domainevents.Payment) (domainevents.Payment, error)
	CreateTicket(ctx context.Context, ticket domainevents.SupportTicket) (domainevents.SupportTicket, error)

	// Analytics sub-queries. Each is issued independently; a failure in
	// one must not affect the others.
	CountRegistrations(ctx context.Context, filter StatsFilter) (int64, error)
	SumRevenue(ctx context.Context, filter StatsFilter) (total float64, transactions int64, err error)
	CountCheckIns(ctx context.Context, filter StatsFilter) (int64, error)
}
