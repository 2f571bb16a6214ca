// Package events implements the platform usecases on top of the Store
// port. Handlers and MCP tools both call through here, so create and
// list operations always see the same data.
package events

import (
	"time"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

type Service struct {
	store ports.Store
	uow   ports.UnitOfWork
	cache ports.Cache

	now   func() time.Time
	newID func(prefix string) string
}

// NewService wires the platform usecases. cache may be nil; analytics
// then recomputes on every call.
func NewService(store ports.Store, uow ports.UnitOfWork, cache ports.Cache) *Service {
	return &Service{
		store: store,
		uow:   uow,
		cache: cache,
		now:   time.Now,
		newID: domainevents.NewID,
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

type CreateEventInput struct {
	Name           string
	EventType      string
	StartDate      string
	EndDate        string
	Location       string
	VenueName      string
	MaxCompetitors int
	EarlyBirdPrice float64
	RegularPrice   float64
	Description    string
}

type RegisterCompetitorInput struct {
	EventID        string
	CompetitorName string
	Email          string
	Phone          string
	VehicleInfo    map[string]any
	ClassID        string
	TeamName       string
}

type RecordPaymentInput struct {
	RegistrationID string
	Amount         float64
	Currency       string
	PaymentMethod  string
	Metadata       map[string]any
}

type OpenTicketInput struct {
	Subject     string
	Description string
	Priority    string
	Category    string
	UserEmail   string
	Attachments []string
}

type AnalyticsInput struct {
	EventID   string
	StartDate string
	EndDate   string
	Metrics   []string
}
