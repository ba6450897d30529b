package domain

import "time"

type TicketState string

const (
	TicketStateCreated  TicketState = "created"
	TicketStateRedeemed TicketState = "redeemed"
)

// Ticket is one admission right. Its ID is derived from the payment
// reference that produced it, so re-issuing for the same payment yields
// the same ticket.
type Ticket struct {
	ID         string
	SourceRef  string
	CreatedAt  time.Time
	RedeemedAt *time.Time
	RedeemedBy string
}

// State is derived from RedeemedAt; there is no separate status column.
func (t Ticket) State() TicketState {
	if t.RedeemedAt != nil {
		return TicketStateRedeemed
	}
	return TicketStateCreated
}
