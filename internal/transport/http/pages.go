package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/cartercs66-svg/qr-ticket/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type homePage struct {
	Event          config.Event
	PaymentLinkURL template.URL
}

type ticketPage struct {
	Event    config.Event
	TicketID string
	// QRDataURI is a data:image/png URI built by us, typed so the
	// template engine does not reject the data scheme.
	QRDataURI template.URL
}

type checkinPage struct {
	TicketID   string
	RedeemedAt string
}

type scannerPage struct {
	BaseURL string
}

func renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
