package events

import "strings"

// Event types.
const (
	TypeSPL  = "SPL"
	TypeSQ   = "SQ"
	TypeShow = "Show"
)

// Event statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Registration statuses.
const (
	RegistrationPendingPayment = "pending_payment"
	RegistrationConfirmed      = "confirmed"
)

// PaymentSucceeded is the only payment status the platform records.
const PaymentSucceeded = "succeeded"

// TicketOpen is the status every new support ticket starts in.
const TicketOpen = "open"

// Ticket priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Analytics metric names.
const (
	MetricRegistrations = "registrations"
	MetricRevenue       = "revenue"
	MetricAttendance    = "attendance"
)

func ValidEventType(t string) bool {
	switch t {
	case TypeSPL, TypeSQ, TypeShow:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func validMetric(m string) bool {
	switch m {
	case MetricRegistrations, MetricRevenue, MetricAttendance:
		return true
	}
	return false
}

// NormalizeMetrics trims and dedupes the requested metric names. An empty
// request means all metrics. Unknown names are reported back so the caller
// can fail validation instead of silently dropping them.
func NormalizeMetrics(requested []string) (valid []string, unknown []string) {
	if len(requested) == 0 {
		return []string{MetricRegistrations, MetricRevenue, MetricAttendance}, nil
	}

	seen := make(map[string]struct{}, len(requested))
	for _, raw := range requested {
		m := strings.ToLower(strings.TrimSpace(raw))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}

		if validMetric(m) {
			valid = append(valid, m)
		} else {
			unknown = append(unknown, m)
		}
	}

	return valid, unknown
}
