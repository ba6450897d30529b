package app

import (
	"context"

	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

// DefaultActor identifies the door station when the caller does not
// name a redeeming actor.
const DefaultActor = "door"

type CheckinService struct {
	store TicketStore
}

func NewCheckinService(store TicketStore) *CheckinService {
	return &CheckinService{store: store}
}

// CheckIn redeems the ticket exactly once. Outcomes are first-class:
// domain.ErrTicketNotFound and domain.ErrTicketAlreadyRedeemed are
// expected results, not faults, and the already-redeemed case carries
// the original redemption record for display.
func (s *CheckinService) CheckIn(ctx context.Context, ticketID, actor string) (domain.Ticket, error) {
	if ticketID == "" {
		return domain.Ticket{}, domain.ErrTicketIDRequired
	}
	if actor == "" {
		actor = DefaultActor
	}
	return s.store.Redeem(ctx, ticketID, actor)
}
