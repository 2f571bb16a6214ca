// Package events holds the platform's domain records and the rules that
// constrain them. Persistence and transport shapes live elsewhere.
package events

// Event is a car audio competition event.
type Event struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	EventType      string  `json:"event_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Location       string  `json:"location"`
	VenueName      string  `json:"venue_name"`
	MaxCompetitors int     `json:"max_competitors"`
	EarlyBirdPrice float64 `json:"early_bird_price"`
	RegularPrice   float64 `json:"regular_price"`
	Description    string  `json:"description,omitempty"`
	Status         string  `json:"status"`
	Registrations  int64   `json:"registrations"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// Registration ties a competitor to an event.
type Registration struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	CompetitorName string         `json:"competitor_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	VehicleInfo    map[string]any `json:"vehicle_info"`
	ClassID        string         `json:"class_id"`
	TeamName       string         `json:"team_name,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"created_at"`
}

// Payment is a recorded charge against a registration. No gateway is
// called; records are synthesized with status succeeded.
type Payment struct {
	ID             string         `json:"id"`
	RegistrationID string         `json:"registration_id"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency"`
	PaymentMethod  string         `json:"payment_method"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Status         string         `json:"status"`
	ProcessedAt    string         `json:"processed_at"`
}

// SupportTicket is a user-reported issue.
type SupportTicket struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	UserEmail   string   `json:"created_by"`
	Attachments []string `json:"attachments,omitempty"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
}

// CheckIn marks a competitor as present at an event; it backs the
// attendance metric.
type CheckIn struct {
	ID             string `json:"id"`
	EventID        string `json:"event_id"`
	RegistrationID string `json:"registration_id"`
	CheckedInAt    string `json:"checked_in_at"`
}

// Snapshot is the response-only analytics aggregate. Only requested
// metrics are populated; it is computed per call and never persisted.
type Snapshot struct {
	Period  Period          `json:"period"`
	Metrics SnapshotMetrics `json:"metrics"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SnapshotMetrics struct {
	Registrations *RegistrationStats `json:"registrations,omitempty"`
	Revenue       *RevenueStats      `json:"revenue,omitempty"`
	Attendance    *AttendanceStats   `json:"attendance,omitempty"`
}

type RegistrationStats struct {
	Total int64 `json:"total"`
}

type RevenueStats struct {
	Total            float64 `json:"total"`
	TransactionCount int64   `json:"transaction_count"`
}

type AttendanceStats struct {
	TotalCheckedIn int64 `json:"total_checked_in"`
}
