package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

// TicketRedeemer is the minimal interface needed to redeem a ticket.
type TicketRedeemer interface {
	CheckIn(ctx context.Context, ticketID, actor string) (domain.Ticket, error)
}

// HandleCheckin serves the door scan. The three outcomes render as
// distinct pages with distinct status codes, so both a human at the
// door and a scripted scanner can tell them apart.
func HandleCheckin(svc TicketRedeemer, actor string, logger *log.Logger) http.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		ticket, err := svc.CheckIn(r.Context(), code, actor)
		switch {
		case err == nil:
			renderPage(w, http.StatusOK, "admit.html", checkinPage{TicketID: ticket.ID})
		case errors.Is(err, domain.ErrTicketAlreadyRedeemed):
			page := checkinPage{TicketID: code}
			if ticket.RedeemedAt != nil {
				page.RedeemedAt = ticket.RedeemedAt.Format(time.RFC822)
			}
			renderPage(w, http.StatusConflict, "already_used.html", page)
		case errors.Is(err, domain.ErrTicketNotFound):
			renderPage(w, http.StatusNotFound, "unknown.html", checkinPage{TicketID: code})
		default:
			logger.Printf("check-in failed: %v", err)
			http.Error(w, "error during check-in", http.StatusInternalServerError)
		}
	}
}
