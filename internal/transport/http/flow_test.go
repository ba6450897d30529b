package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/clock"
	"github.com/cartercs66-svg/qr-ticket/internal/config"
	"github.com/cartercs66-svg/qr-ticket/internal/payments"
	"github.com/cartercs66-svg/qr-ticket/internal/storage/memory"
)

// The full purchase-to-door flow against the transient store: buy,
// render ticket, scan once, scan again, scan garbage.
func TestTicketFlow(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(clock.NewFixed(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)))
	verifier := payments.NewFakeVerifier()
	event := config.Event{Name: "Warehouse Night"}

	mux := http.NewServeMux()
	mux.Handle("/ticket", HandleTicket(verifier, app.NewIssueService(store), "https://tickets.example.com", event, discardLogger()))
	mux.Handle("/checkin", HandleCheckin(app.NewCheckinService(store), "door", discardLogger()))

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	// Paid session renders a ticket; a refresh renders the same one.
	for i := 0; i < 2; i++ {
		rec := get("/ticket?session_id=sess_123")
		if rec.Code != http.StatusOK {
			t.Fatalf("ticket request %d: expected 200, got %d", i, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Ticket ID: sess_123") {
			t.Fatalf("ticket request %d: expected ticket id in page", i)
		}
	}

	// First scan admits.
	rec := get("/checkin?code=sess_123")
	if rec.Code != http.StatusOK {
		t.Fatalf("first scan: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ADMIT") {
		t.Fatalf("first scan: expected admit page")
	}

	// Second scan is rejected as already used.
	rec = get("/checkin?code=sess_123")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second scan: expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ALREADY USED") {
		t.Fatalf("second scan: expected already-used page")
	}

	// A code that was never issued is unknown.
	rec = get("/checkin?code=sess_999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown scan: expected 404, got %d", rec.Code)
	}

	// An unpaid session never creates a ticket.
	rec = get("/ticket?session_id=unpaid_sess_777")
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("unpaid session: expected 402, got %d", rec.Code)
	}
	rec = get("/checkin?code=unpaid_sess_777")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unpaid would-be ticket: expected 404, got %d", rec.Code)
	}
}
