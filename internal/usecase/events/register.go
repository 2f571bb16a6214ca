package events

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

// RegisterCompetitor creates a registration in pending_payment status.
// It is confirmed later when a payment is recorded against it.
func (s *Service) RegisterCompetitor(ctx context.Context, in RegisterCompetitorInput) (domainevents.Registration, error) {
	if err := validateRegisterCompetitor(in); err != nil {
		return domainevents.Registration{}, err
	}

	reg := domainevents.Registration{
		ID:             s.newID(domainevents.RegistrationIDPrefix),
		EventID:        in.EventID,
		CompetitorName: in.CompetitorName,
		Email:          in.Email,
		Phone:          in.Phone,
		VehicleInfo:    in.VehicleInfo,
		ClassID:        in.ClassID,
		TeamName:       in.TeamName,
		Status:         domainevents.RegistrationPendingPayment,
		CreatedAt:      s.timestamp(),
	}

	created, err := s.store.CreateRegistration(ctx, reg)
	if err != nil {
		return domainevents.Registration{}, errs.Wrap(err, "create registration")
	}

	logging.Info(ctx, "competitor registered",
		slog.String("registration_id", created.ID),
		slog.String("event_id", created.EventID),
		slog.String("competitor", created.CompetitorName),
	)
	return created, nil
}

// ListRegistrations returns registrations matching the optional event
// and status filters.
func (s *Service) ListRegistrations(ctx context.Context, filter ports.RegistrationFilter) ([]domainevents.Registration, error) {
	items, err := s.store.ListRegistrations(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "list registrations")
	}
	return items, nil
}

func validateRegisterCompetitor(in RegisterCompetitorInput) error {
	for field, value := range map[string]string{
		"event_id":        in.EventID,
		"competitor_name": in.CompetitorName,
		"email":           in.Email,
		"phone":           in.Phone,
		"class_id":        in.ClassID,
	} {
		if strings.TrimSpace(value) == "" {
			return errs.Validationf("%s is required", field)
		}
	}
	if len(in.VehicleInfo) == 0 {
		return errs.Validation("vehicle_info is required")
	}
	return nil
}
