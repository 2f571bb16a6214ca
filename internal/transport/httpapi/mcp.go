package httpapi

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/ports"
	usecaseevents "github.com/jryan2014/car-audio-events/internal/usecase/events"
)

// newMCPHandler exposes the platform operations as MCP tools so an
// agent can drive the same usecase service the REST handlers use.
func newMCPHandler(svc *usecaseevents.Service) http.Handler {
	server := newMCPServer(svc)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func newMCPServer(svc *usecaseevents.Service) *mcp.Server {
	t := &tools{svc: svc}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "car-audio-events",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_event",
		Description: "Create a new car audio competition event (SPL, SQ or Show).",
	}, t.createEvent)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_events",
		Description: "List events with optional status and event_type filters.",
	}, t.listEvents)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_event",
		Description: "Fetch a single event by its id.",
	}, t.getEvent)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "register_competitor",
		Description: "Register a competitor for an event with vehicle and class details.",
	}, t.registerCompetitor)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_analytics",
		Description: "Retrieve registration, revenue and attendance metrics for events.",
	}, t.analytics)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_payment",
		Description: "Record a payment for a registration and confirm it.",
	}, t.processPayment)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_support_ticket",
		Description: "Open a support ticket for a user issue.",
	}, t.createSupportTicket)

	return server
}

type tools struct {
	svc *usecaseevents.Service
}

type createEventArgs struct {
	Name           string  `json:"name"`
	EventType      string  `json:"event_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Location       string  `json:"location"`
	VenueName      string  `json:"venue_name"`
	MaxCompetitors int     `json:"max_competitors,omitempty"`
	EarlyBirdPrice float64 `json:"early_bird_price"`
	RegularPrice   float64 `json:"regular_price"`
	Description    string  `json:"description,omitempty"`
}

type eventResult struct {
	Event domainevents.Event `json:"event"`
}

func (t *tools) createEvent(ctx context.Context, _ *mcp.CallToolRequest, args createEventArgs) (*mcp.CallToolResult, eventResult, error) {
	event, err := t.svc.CreateEvent(ctx, usecaseevents.CreateEventInput{
		Name:           args.Name,
		EventType:      args.EventType,
		StartDate:      args.StartDate,
		EndDate:        args.EndDate,
		Location:       args.Location,
		VenueName:      args.VenueName,
		MaxCompetitors: args.MaxCompetitors,
		EarlyBirdPrice: args.EarlyBirdPrice,
		RegularPrice:   args.RegularPrice,
		Description:    args.Description,
	})
	if err != nil {
		return nil, eventResult{}, err
	}
	return nil, eventResult{Event: event}, nil
}

type listEventsArgs struct {
	Status    string `json:"status,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type listEventsResult struct {
	Count  int                  `json:"count"`
	Events []domainevents.Event `json:"events"`
}

func (t *tools) listEvents(ctx context.Context, _ *mcp.CallToolRequest, args listEventsArgs) (*mcp.CallToolResult, listEventsResult, error) {
	items, err := t.svc.ListEvents(ctx, ports.EventFilter{
		Status:    args.Status,
		EventType: args.EventType,
		Limit:     args.Limit,
	})
	if err != nil {
		return nil, listEventsResult{}, err
	}
	return nil, listEventsResult{Count: len(items), Events: items}, nil
}

type getEventArgs struct {
	EventID string `json:"event_id"`
}

func (t *tools) getEvent(ctx context.Context, _ *mcp.CallToolRequest, args getEventArgs) (*mcp.CallToolResult, eventResult, error) {
	event, err := t.svc.GetEvent(ctx, args.EventID)
	if err != nil {
		return nil, eventResult{}, err
	}
	return nil, eventResult{Event: event}, nil
}

type registerCompetitorArgs struct {
	EventID        string         `json:"event_id"`
	CompetitorName string         `json:"competitor_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	VehicleInfo    map[string]any `json:"vehicle_info"`
	ClassID        string         `json:"class_id"`
	TeamName       string         `json:"team_name,omitempty"`
}

type registrationResult struct {
	Registration domainevents.Registration `json:"registration"`
}

func (t *tools) registerCompetitor(ctx context.Context, _ *mcp.CallToolRequest, args registerCompetitorArgs) (*mcp.CallToolResult, registrationResult, error) {
	reg, err := t.svc.RegisterCompetitor(ctx, usecaseevents.RegisterCompetitorInput{
		EventID:        args.EventID,
		CompetitorName: args.CompetitorName,
		Email:          args.Email,
		Phone:          args.Phone,
		VehicleInfo:    args.VehicleInfo,
		ClassID:        args.ClassID,
		TeamName:       args.TeamName,
	})
	if err != nil {
		return nil, registrationResult{}, err
	}
	return nil, registrationResult{Registration: reg}, nil
}

type analyticsArgs struct {
	EventID   string   `json:"event_id,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Metrics   []string `json:"metrics,omitempty"`
}

type analyticsResult struct {
	Analytics domainevents.Snapshot `json:"analytics"`
}

func (t *tools) analytics(ctx context.Context, _ *mcp.CallToolRequest, args analyticsArgs) (*mcp.CallToolResult, analyticsResult, error) {
	snapshot, err := t.svc.Analytics(ctx, usecaseevents.AnalyticsInput{
		EventID:   args.EventID,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Metrics:   args.Metrics,
	})
	if err != nil {
		return nil, analyticsResult{}, err
	}
	return nil, analyticsResult{Analytics: snapshot}, nil
}

type paymentArgs struct {
	RegistrationID string         `json:"registration_id"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency,omitempty"`
	PaymentMethod  string         `json:"payment_method"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

type paymentResult struct {
	Payment domainevents.Payment `json:"payment"`
}

func (t *tools) processPayment(ctx context.Context, _ *mcp.CallToolRequest, args paymentArgs) (*mcp.CallToolResult, paymentResult, error) {
	payment, err := t.svc.RecordPayment(ctx, usecaseevents.RecordPaymentInput{
		RegistrationID: args.RegistrationID,
		Amount:         args.Amount,
		Currency:       args.Currency,
		PaymentMethod:  args.PaymentMethod,
		Metadata:       args.Metadata,
	})
	if err != nil {
		return nil, paymentResult{}, err
	}
	return nil, paymentResult{Payment: payment}, nil
}

type supportTicketArgs struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    string   `json:"priority,omitempty"`
	Category    string   `json:"category"`
	UserEmail   string   `json:"user_email"`
	Attachments []string `json:"attachments,omitempty"`
}

type supportTicketResult struct {
	Ticket domainevents.SupportTicket `json:"ticket"`
}

func (t *tools) createSupportTicket(ctx context.Context, _ *mcp.CallToolRequest, args supportTicketArgs) (*mcp.CallToolResult, supportTicketResult, error) {
	ticket, err := t.svc.OpenTicket(ctx, usecaseevents.OpenTicketInput{
		Subject:     args.Subject,
		Description: args.Description,
		Priority:    args.Priority,
		Category:    args.Category,
		UserEmail:   args.UserEmail,
		Attachments: args.Attachments,
	})
	if err != nil {
		return nil, supportTicketResult{}, err
	}
	return nil, supportTicketResult{Ticket: ticket}, nil
}
