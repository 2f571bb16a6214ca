package events

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

const defaultMaxCompetitors = 100

// CreateEvent validates the submitted fields and persists a new draft
// event with a generated identifier.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (domainevents.Event, error) {
	if err := validateCreateEvent(in); err != nil {
		return domainevents.Event{}, err
	}

	maxCompetitors := in.MaxCompetitors
	if maxCompetitors <= 0 {
		maxCompetitors = defaultMaxCompetitors
	}

	now := s.timestamp()
	event := domainevents.Event{
		ID:             s.newID(domainevents.EventIDPrefix),
		Name:           in.Name,
		EventType:      in.EventType,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Location:       in.Location,
		VenueName:      in.VenueName,
		MaxCompetitors: maxCompetitors,
		EarlyBirdPrice: in.EarlyBirdPrice,
		RegularPrice:   in.RegularPrice,
		Description:    in.Description,
		Status:         domainevents.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return domainevents.Event{}, errs.Wrap(err, "create event")
	}

	logging.Info(ctx, "event created",
		slog.String("event_id", created.ID),
		slog.String("name", created.Name),
		slog.String("event_type", created.EventType),
	)
	return created, nil
}

func validateCreateEvent(in CreateEventInput) error {
	for field, value := range map[string]string{
		"name":       in.Name,
		"event_type": in.EventType,
		"start_date": in.StartDate,
		"end_date":   in.EndDate,
		"location":   in.Location,
		"venue_name": in.VenueName,
	} {
		if strings.TrimSpace(value) == "" {
			return errs.Validationf("%s is required", field)
		}
	}

	if !domainevents.ValidEventType(in.EventType) {
		return errs.Validationf("event_type must be one of SPL, SQ, Show; got %q", in.EventType)
	}
	return nil
}
