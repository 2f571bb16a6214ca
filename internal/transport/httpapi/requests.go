package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/jryan2014/car-audio-events/internal/errs"
)

// Request payloads. Field-presence and type errors surface as
// validation failures; semantic checks live in the usecase layer.

type createEventRequest struct {
	Name           string  `json:"name"`
	EventType      string  `json:"event_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Location       string  `json:"location"`
	VenueName      string  `json:"venue_name"`
	MaxCompetitors int     `json:"max_competitors"`
	EarlyBirdPrice float64 `json:"early_bird_price"`
	RegularPrice   float64 `json:"regular_price"`
	Description    string  `json:"description"`
}

type registerCompetitorRequest struct {
	EventID        string         `json:"event_id"`
	CompetitorName string         `json:"competitor_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	VehicleInfo    map[string]any `json:"vehicle_info"`
	ClassID        string         `json:"class_id"`
	TeamName       string         `json:"team_name"`
}

type analyticsRequest struct {
	EventID   string   `json:"event_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Metrics   []string `json:"metrics"`
}

type paymentRequest struct {
	RegistrationID string         `json:"registration_id"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency"`
	PaymentMethod  string         `json:"payment_method"`
	Metadata       map[string]any `json:"metadata"`
}

type supportTicketRequest struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	UserEmail   string   `json:"user_email"`
	Attachments []string `json:"attachments"`
}

// decodeBody parses the JSON request body into dst. A malformed or
// mistyped body is a validation failure, never an internal error.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errs.WithKind(errs.Wrap(err, "invalid request body"), errs.KindValidation)
	}
	return nil
}
