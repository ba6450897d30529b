// Package postgres provides the durable ticket store. Single-use
// redemption relies on a conditional UPDATE, so the guarantee holds
// across any number of API processes sharing the database.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cartercs66-svg/qr-ticket/internal/clock"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

type TicketRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewTicketRepository(pool *pgxpool.Pool, clk clock.Clock) *TicketRepository {
	return &TicketRepository{pool: pool, clock: clk}
}

func (r *TicketRepository) CreateIfAbsent(ctx context.Context, id, sourceRef string) error {
	const stmt = `
INSERT INTO tickets (ticket_id, session_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (ticket_id) DO NOTHING`

	if _, err := r.exec(ctx, stmt, id, sourceRef, r.clock.Now()); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// Redeem marks the ticket redeemed iff it has not been redeemed yet.
// The WHERE redeemed_at IS NULL guard makes the transition a single
// conditional write; concurrent scans of the same id serialize on the
// row lock and at most one of them sees the updated row returned.
func (r *TicketRepository) Redeem(ctx context.Context, id, actor string) (domain.Ticket, error) {
	now := r.clock.Now()
	var result domain.Ticket

	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		const stmt = `
UPDATE tickets
SET redeemed_at = $2, redeemed_by = $3
WHERE ticket_id = $1 AND redeemed_at IS NULL
RETURNING ticket_id, session_id, created_at, redeemed_at, redeemed_by`

		ticket, err := scanTicket(r.queryRow(txCtx, stmt, id, now, actor))
		if err == nil {
			result = ticket
			return nil
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("redeem ticket: %w", err)
		}

		// Zero rows updated: the ticket is unknown or already redeemed.
		existing, err := r.Get(txCtx, id)
		if err != nil {
			return err
		}
		result = existing
		return domain.ErrTicketAlreadyRedeemed
	})
	if err != nil && err != domain.ErrTicketAlreadyRedeemed {
		return domain.Ticket{}, err
	}
	return result, err
}

func (r *TicketRepository) Get(ctx context.Context, id string) (domain.Ticket, error) {
	const query = `
SELECT ticket_id, session_id, created_at, redeemed_at, redeemed_by
FROM tickets
WHERE ticket_id = $1`

	ticket, err := scanTicket(r.queryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	var redeemedBy *string
	if err := row.Scan(&t.ID, &t.SourceRef, &t.CreatedAt, &t.RedeemedAt, &redeemedBy); err != nil {
		return domain.Ticket{}, err
	}
	if redeemedBy != nil {
		t.RedeemedBy = *redeemedBy
	}
	return t, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
