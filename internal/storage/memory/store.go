// Package memory provides a transient ticket store for running without
// a database. State is lost on restart; the atomicity contract is the
// same as the durable store's.
package memory

import (
	"context"
	"sync"

	"github.com/cartercs66-svg/qr-ticket/internal/clock"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	tickets map[string]domain.Ticket
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		clock:   clk,
		tickets: make(map[string]domain.Ticket),
	}
}

func (s *Store) CreateIfAbsent(_ context.Context, id, sourceRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[id]; ok {
		return nil
	}
	s.tickets[id] = domain.Ticket{
		ID:        id,
		SourceRef: sourceRef,
		CreatedAt: s.clock.Now(),
	}
	return nil
}

// Redeem holds the mutex only for the map check-and-set, so unrelated
// ids contend for nanoseconds, never across I/O.
func (s *Store) Redeem(_ context.Context, id, actor string) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	if ticket.RedeemedAt != nil {
		return ticket, domain.ErrTicketAlreadyRedeemed
	}

	redeemedAt := s.clock.Now()
	ticket.RedeemedAt = &redeemedAt
	ticket.RedeemedBy = actor
	s.tickets[id] = ticket
	return ticket, nil
}

func (s *Store) Get(_ context.Context, id string) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return ticket, nil
}
