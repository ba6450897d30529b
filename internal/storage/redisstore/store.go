// Package redisstore keeps the ticket ledger in Redis. Each ticket is a
// hash, and both mutations run as Lua scripts so the conditional check
// and the write execute as one atomic server-side step.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cartercs66-svg/qr-ticket/internal/clock"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

const keyPrefix = "ticket:"

const createScript = `
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'session_id', ARGV[1], 'created_at', ARGV[2])
return 1
`

const redeemScript = `
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 'not_found'
end
if redis.call('HEXISTS', KEYS[1], 'redeemed_at') == 1 then
  return 'already_used'
end
redis.call('HSET', KEYS[1], 'redeemed_at', ARGV[1], 'redeemed_by', ARGV[2])
return 'ok'
`

type Store struct {
	rdb   *redis.Client
	clock clock.Clock
}

func NewStore(rdb *redis.Client, clk clock.Clock) *Store {
	return &Store{rdb: rdb, clock: clk}
}

func ticketKey(id string) string {
	return keyPrefix + id
}

func (s *Store) CreateIfAbsent(ctx context.Context, id, sourceRef string) error {
	createdAt := s.clock.Now().Format(time.RFC3339Nano)
	err := s.rdb.Eval(ctx, createScript, []string{ticketKey(id)}, sourceRef, createdAt).Err()
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *Store) Redeem(ctx context.Context, id, actor string) (domain.Ticket, error) {
	redeemedAt := s.clock.Now().Format(time.RFC3339Nano)
	outcome, err := s.rdb.Eval(ctx, redeemScript, []string{ticketKey(id)}, redeemedAt, actor).Text()
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("redeem ticket: %w", err)
	}

	switch outcome {
	case "not_found":
		return domain.Ticket{}, domain.ErrTicketNotFound
	case "already_used":
		ticket, err := s.Get(ctx, id)
		if err != nil {
			return domain.Ticket{}, err
		}
		return ticket, domain.ErrTicketAlreadyRedeemed
	case "ok":
		return s.Get(ctx, id)
	default:
		return domain.Ticket{}, fmt.Errorf("redeem ticket: unexpected outcome %q", outcome)
	}
}

func (s *Store) Get(ctx context.Context, id string) (domain.Ticket, error) {
	fields, err := s.rdb.HGetAll(ctx, ticketKey(id)).Result()
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	if len(fields) == 0 {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return parseTicket(id, fields)
}

func parseTicket(id string, fields map[string]string) (domain.Ticket, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("parse created_at: %w", err)
	}

	ticket := domain.Ticket{
		ID:        id,
		SourceRef: fields["session_id"],
		CreatedAt: createdAt,
	}
	if raw, ok := fields["redeemed_at"]; ok {
		redeemedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("parse redeemed_at: %w", err)
		}
		ticket.RedeemedAt = &redeemedAt
		ticket.RedeemedBy = fields["redeemed_by"]
	}
	return ticket, nil
}
