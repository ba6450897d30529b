package app

import (
	"context"

	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

type IssueService struct {
	store TicketStore
}

func NewIssueService(store TicketStore) *IssueService {
	return &IssueService{store: store}
}

// ticketIDFor derives the ticket id from the payment reference. One
// ticket per payment, no added randomness: the reference is the id.
// This is what makes re-issuance idempotent across page refreshes.
func ticketIDFor(paymentRef string) string {
	return paymentRef
}

// Issue registers a ticket for a confirmed payment and returns it,
// whether newly created or pre-existing. Callers must have verified
// payment success already; Issue does not check it.
func (s *IssueService) Issue(ctx context.Context, paymentRef string) (domain.Ticket, error) {
	if paymentRef == "" {
		return domain.Ticket{}, domain.ErrSessionRefRequired
	}

	id := ticketIDFor(paymentRef)
	if err := s.store.CreateIfAbsent(ctx, id, paymentRef); err != nil {
		return domain.Ticket{}, err
	}
	return s.store.Get(ctx, id)
}
