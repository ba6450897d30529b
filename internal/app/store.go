package app

import (
	"context"

	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

// TicketStore is the ledger of issued tickets and the only shared mutable
// state in the system. Implementations must provide per-id atomicity for
// both mutations; unrelated ids must not serialize against each other.
type TicketStore interface {
	// CreateIfAbsent inserts a new ticket in the created state. It is a
	// no-op, not an error, when the id already exists, and must be atomic
	// with respect to concurrent callers using the same id.
	CreateIfAbsent(ctx context.Context, id, sourceRef string) error

	// Redeem atomically transitions the ticket from created to redeemed
	// and returns it. Exactly one concurrent caller observes success for
	// a given id; the rest get domain.ErrTicketAlreadyRedeemed, with the
	// previously redeemed ticket returned alongside the error. A missing
	// id yields domain.ErrTicketNotFound and mutates nothing.
	Redeem(ctx context.Context, id, actor string) (domain.Ticket, error)

	// Get returns the ticket or domain.ErrTicketNotFound.
	Get(ctx context.Context, id string) (domain.Ticket, error)
}
