package events

import "github.com/google/uuid"

// ID prefixes per record kind.
const (
	EventIDPrefix        = "evt"
	RegistrationIDPrefix = "reg"
	PaymentIDPrefix      = "pay"
	TicketIDPrefix       = "tkt"
	CheckInIDPrefix      = "chk"
)

// NewID returns a prefixed identifier that is unique across concurrent
// creations. Wall-clock derived IDs collide within a fractional second;
// a random UUID cannot.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
