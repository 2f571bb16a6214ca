package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/ports"
	usecaseevents "github.com/jryan2014/car-audio-events/internal/usecase/events"
)

type handlers struct {
	svc *usecaseevents.Service
	now func() time.Time
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	respond(r.Context(), w, http.StatusOK, envelope{
		"message":   "Car Audio Events Platform API",
		"status":    "operational",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"events":        "/api/events",
			"registrations": "/api/registrations",
			"analytics":     "/api/analytics",
			"payments":      "/api/payments",
			"support":       "/api/support",
			"mcp":           "/mcp",
		},
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respond(r.Context(), w, http.StatusOK, envelope{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   "car-audio-events",
	})
}

func (h *handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEventRequest
	if err := decodeBody(r, &req); err != nil {
		fail(ctx, w, err)
		return
	}

	event, err := h.svc.CreateEvent(ctx, usecaseevents.CreateEventInput{
		Name:           req.Name,
		EventType:      req.EventType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Location:       req.Location,
		VenueName:      req.VenueName,
		MaxCompetitors: req.MaxCompetitors,
		EarlyBirdPrice: req.EarlyBirdPrice,
		RegularPrice:   req.RegularPrice,
		Description:    req.Description,
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"message": "Event '" + event.Name + "' created successfully",
		"event":   event,
	})
}

func (h *handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := ports.EventFilter{
		Status:    query.Get("status"),
		EventType: query.Get("event_type"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			fail(ctx, w, errs.Validationf("limit must be an integer; got %q", raw))
			return
		}
		filter.Limit = limit
	}

	items, err := h.svc.ListEvents(ctx, filter)
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"count":  len(items),
		"events": items,
	})
}

func (h *handlers) getEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, err := h.svc.GetEvent(ctx, chi.URLParam(r, "eventID"))
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{"event": event})
}

func (h *handlers) registerCompetitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerCompetitorRequest
	if err := decodeBody(r, &req); err != nil {
		fail(ctx, w, err)
		return
	}

	reg, err := h.svc.RegisterCompetitor(ctx, usecaseevents.RegisterCompetitorInput{
		EventID:        req.EventID,
		CompetitorName: req.CompetitorName,
		Email:          req.Email,
		Phone:          req.Phone,
		VehicleInfo:    req.VehicleInfo,
		ClassID:        req.ClassID,
		TeamName:       req.TeamName,
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"message":      "Registration created successfully",
		"registration": reg,
	})
}

func (h *handlers) listRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	items, err := h.svc.ListRegistrations(ctx, ports.RegistrationFilter{
		EventID: query.Get("event_id"),
		Status:  query.Get("status"),
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"count":         len(items),
		"registrations": items,
	})
}

func (h *handlers) analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyticsRequest
	if err := decodeBody(r, &req); err != nil {
		fail(ctx, w, err)
		return
	}

	snapshot, err := h.svc.Analytics(ctx, usecaseevents.AnalyticsInput{
		EventID:   req.EventID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Metrics:   req.Metrics,
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{"analytics": snapshot})
}

func (h *handlers) recordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		fail(ctx, w, err)
		return
	}

	payment, err := h.svc.RecordPayment(ctx, usecaseevents.RecordPaymentInput{
		RegistrationID: req.RegistrationID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PaymentMethod:  req.PaymentMethod,
		Metadata:       req.Metadata,
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

func (h *handlers) createSupportTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req supportTicketRequest
	if err := decodeBody(r, &req); err != nil {
		fail(ctx, w, err)
		return
	}

	ticket, err := h.svc.OpenTicket(ctx, usecaseevents.OpenTicketInput{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		UserEmail:   req.UserEmail,
		Attachments: req.Attachments,
	})
	if err != nil {
		fail(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, envelope{
		"message": "Support ticket created successfully",
		"ticket":  ticket,
	})
}
