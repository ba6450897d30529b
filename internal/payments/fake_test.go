package payments

import (
	"context"
	"testing"

	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

func TestFakeVerifier(t *testing.T) {
	t.Parallel()

	v := NewFakeVerifier()

	t.Run("paid reference confirms", func(t *testing.T) {
		conf, err := v.Confirm(context.Background(), "sess_123")
		if err != nil {
			t.Fatalf("expected confirmation, got %v", err)
		}
		if conf.Reference != "sess_123" {
			t.Fatalf("expected reference sess_123, got %s", conf.Reference)
		}
		if conf.Status != "paid" {
			t.Fatalf("expected status paid, got %s", conf.Status)
		}
	})

	t.Run("unpaid prefix short-circuits", func(t *testing.T) {
		_, err := v.Confirm(context.Background(), "unpaid_sess_123")
		if err != domain.ErrPaymentNotCompleted {
			t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
		}
	})
}
