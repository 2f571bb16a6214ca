package events

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

// OpenTicket files a support ticket in open status.
func (s *Service) OpenTicket(ctx context.Context, in OpenTicketInput) (domainevents.SupportTicket, error) {
	if err := validateOpenTicket(in); err != nil {
		return domainevents.SupportTicket{}, err
	}

	priority := strings.TrimSpace(in.Priority)
	if priority == "" {
		priority = domainevents.PriorityMedium
	}
	if !domainevents.ValidPriority(priority) {
		return domainevents.SupportTicket{}, errs.Validationf("priority must be one of low, medium, high, urgent; got %q", priority)
	}

	ticket := domainevents.SupportTicket{
		ID:          s.newID(domainevents.TicketIDPrefix),
		Subject:     in.Subject,
		Description: in.Description,
		Priority:    priority,
		Category:    in.Category,
		UserEmail:   in.UserEmail,
		Attachments: in.Attachments,
		Status:      domainevents.TicketOpen,
		CreatedAt:   s.timestamp(),
	}

	created, err := s.store.CreateTicket(ctx, ticket)
	if err != nil {
		return domainevents.SupportTicket{}, errs.Wrap(err, "create support ticket")
	}

	logging.Info(ctx, "support ticket opened",
		slog.String("ticket_id", created.ID),
		slog.String("priority", created.Priority),
		slog.String("category", created.Category),
	)
	return created, nil
}

func validateOpenTicket(in OpenTicketInput) error {
	for field, value := range map[string]string{
		"subject":     in.Subject,
		"description": in.Description,
		"category":    in.Category,
		"user_email":  in.UserEmail,
	} {
		if strings.TrimSpace(value) == "" {
			return errs.Validationf("%s is required", field)
		}
	}
	return nil
}
