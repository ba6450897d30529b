package http

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/config"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
	"github.com/cartercs66-svg/qr-ticket/internal/token"
)

// TicketIssuer is the minimal interface needed to issue a ticket.
type TicketIssuer interface {
	Issue(ctx context.Context, paymentRef string) (domain.Ticket, error)
}

// HandleTicket serves the ticket page the processor redirects to after
// checkout. Payment is verified on every visit; issuance is idempotent,
// so refreshing the page re-renders the same ticket.
func HandleTicket(verifier app.PaymentVerifier, issuer TicketIssuer, baseURL string, event config.Event, logger *log.Logger) http.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sessionRef := r.URL.Query().Get("session_id")
		if sessionRef == "" {
			http.Error(w, "missing session_id", http.StatusBadRequest)
			return
		}

		conf, err := verifier.Confirm(r.Context(), sessionRef)
		if err != nil {
			if errors.Is(err, domain.ErrPaymentNotCompleted) {
				http.Error(w, "payment not completed", http.StatusPaymentRequired)
				return
			}
			logger.Printf("confirmation lookup failed: %v", err)
			http.Error(w, "payment confirmation unavailable", http.StatusBadGateway)
			return
		}

		ticket, err := issuer.Issue(r.Context(), conf.Reference)
		if err != nil {
			logger.Printf("issue ticket: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		qr, err := token.QRDataURI(token.CheckinURL(baseURL, ticket.ID))
		if err != nil {
			logger.Printf("render qr: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		renderPage(w, http.StatusOK, "ticket.html", ticketPage{
			Event:     event,
			TicketID:  ticket.ID,
			QRDataURI: template.URL(qr),
		})
	}
}
