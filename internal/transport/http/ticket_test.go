package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/config"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

func TestHandleTicket(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	event := config.Event{Name: "Warehouse Night", Datetime: "Sat 21:00", Location: "Berlin"}

	tests := []struct {
		name           string
		target         string
		method         string
		verifierErr    error
		issuerErr      error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "renders ticket for paid session",
			target:         "/ticket?session_id=sess_123",
			expectedStatus: http.StatusOK,
			expectedSubstr: "Ticket ID: sess_123",
		},
		{
			name:           "missing session_id",
			target:         "/ticket",
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "missing session_id",
		},
		{
			name:           "unpaid session",
			target:         "/ticket?session_id=sess_123",
			verifierErr:    domain.ErrPaymentNotCompleted,
			expectedStatus: http.StatusPaymentRequired,
			expectedSubstr: "payment not completed",
		},
		{
			name:           "confirmation lookup down",
			target:         "/ticket?session_id=sess_123",
			verifierErr:    errors.New("connection refused"),
			expectedStatus: http.StatusBadGateway,
			expectedSubstr: "payment confirmation unavailable",
		},
		{
			name:           "store failure",
			target:         "/ticket?session_id=sess_123",
			issuerErr:      errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "method not allowed",
			target:         "/ticket?session_id=sess_123",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verifier := &stubVerifier{err: tt.verifierErr}
			issuer := &stubIssuer{
				ticket: domain.Ticket{ID: "sess_123", SourceRef: "sess_123", CreatedAt: now},
				err:    tt.issuerErr,
			}

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, tt.target, nil)
			rec := httptest.NewRecorder()

			HandleTicket(verifier, issuer, "https://tickets.example.com", event, discardLogger())(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("ticket page embeds the QR image and event details", func(t *testing.T) {
		t.Parallel()
		verifier := &stubVerifier{}
		issuer := &stubIssuer{ticket: domain.Ticket{ID: "sess_123", SourceRef: "sess_123", CreatedAt: now}}

		req := httptest.NewRequest(http.MethodGet, "/ticket?session_id=sess_123", nil)
		rec := httptest.NewRecorder()

		HandleTicket(verifier, issuer, "https://tickets.example.com", event, discardLogger())(rec, req)

		body := rec.Body.String()
		if !strings.Contains(body, `src="data:image/png;base64,`) {
			t.Fatalf("expected inline QR image in page")
		}
		if !strings.Contains(body, "Warehouse Night") {
			t.Fatalf("expected event name in page")
		}
	})

	t.Run("event metadata is escaped", func(t *testing.T) {
		t.Parallel()
		verifier := &stubVerifier{}
		issuer := &stubIssuer{ticket: domain.Ticket{ID: "sess_123", SourceRef: "sess_123", CreatedAt: now}}
		hostile := config.Event{Name: `<script>alert(1)</script>`}

		req := httptest.NewRequest(http.MethodGet, "/ticket?session_id=sess_123", nil)
		rec := httptest.NewRecorder()

		HandleTicket(verifier, issuer, "https://tickets.example.com", hostile, discardLogger())(rec, req)

		body := rec.Body.String()
		if strings.Contains(body, "<script>alert(1)</script>") {
			t.Fatalf("expected event name to be escaped")
		}
		if !strings.Contains(body, "&lt;script&gt;") {
			t.Fatalf("expected escaped markup in page, got %q", body)
		}
	})
}

type stubVerifier struct {
	err error
}

func (s *stubVerifier) Confirm(_ context.Context, sessionRef string) (app.PaymentConfirmation, error) {
	if s.err != nil {
		return app.PaymentConfirmation{}, s.err
	}
	return app.PaymentConfirmation{Reference: sessionRef, Status: "paid"}, nil
}

type stubIssuer struct {
	ticket domain.Ticket
	err    error
}

func (s *stubIssuer) Issue(_ context.Context, _ string) (domain.Ticket, error) {
	if s.err != nil {
		return domain.Ticket{}, s.err
	}
	return s.ticket, nil
}
