package events

import (
	"context"
	"errors"
	"strings"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

// ListEvents returns events matching the optional status and type
// filters, capped at the limit (default 10).
func (s *Service) ListEvents(ctx context.Context, filter ports.EventFilter) ([]domainevents.Event, error) {
	items, err := s.store.ListEvents(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "list events")
	}
	return items, nil
}

// GetEvent looks up a single event by id.
func (s *Service) GetEvent(ctx context.Context, eventID string) (domainevents.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return domainevents.Event{}, errs.Validation("event id is required")
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, ports.ErrEventNotFound) {
			return domainevents.Event{}, errs.WithKind(err, errs.KindValidation)
		}
		return domainevents.Event{}, errs.Wrap(err, "get event")
	}
	return event, nil
}
