package http

import (
	"html/template"
	"net/http"

	"github.com/cartercs66-svg/qr-ticket/internal/config"
)

// HandleHome serves the landing page with the event details and the
// processor's payment link.
func HandleHome(event config.Event, paymentLinkURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			NotFoundHandler().ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		renderPage(w, http.StatusOK, "home.html", homePage{
			Event:          event,
			PaymentLinkURL: template.URL(paymentLinkURL),
		})
	}
}
