package events

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

const defaultCurrency = "USD"

// RecordPayment stores a succeeded payment and confirms its registration
// in the same transaction. No gateway is called.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (domainevents.Payment, error) {
	if err := validateRecordPayment(in); err != nil {
		return domainevents.Payment{}, err
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	payment := domainevents.Payment{
		ID:             s.newID(domainevents.PaymentIDPrefix),
		RegistrationID: in.RegistrationID,
		Amount:         in.Amount,
		Currency:       currency,
		PaymentMethod:  in.PaymentMethod,
		Metadata:       in.Metadata,
		Status:         domainevents.PaymentSucceeded,
		ProcessedAt:    s.timestamp(),
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		created, err := s.store.CreatePayment(txCtx, payment)
		if err != nil {
			return errs.Wrap(err, "create payment")
		}
		payment = created

		if err := s.store.ConfirmRegistration(txCtx, payment.RegistrationID); err != nil {
			return errs.Wrap(err, "confirm registration")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrRegistrationNotFound) {
			return domainevents.Payment{}, errs.WithKind(err, errs.KindValidation)
		}
		return domainevents.Payment{}, errs.Wrap(err, "record payment")
	}

	logging.Info(ctx, "payment recorded",
		slog.String("payment_id", payment.ID),
		slog.String("registration_id", payment.RegistrationID),
		slog.Float64("amount", payment.Amount),
		slog.String("currency", payment.Currency),
	)
	return payment, nil
}

func validateRecordPayment(in RecordPaymentInput) error {
	if strings.TrimSpace(in.RegistrationID) == "" {
		return errs.Validation("registration_id is required")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return errs.Validation("payment_method is required")
	}
	if in.Amount <= 0 {
		return errs.Validation("amount must be positive")
	}
	return nil
}
