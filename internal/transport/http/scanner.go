package http

import "net/http"

// HandleScanner serves the staff browser scanner. A successful scan
// navigates to the decoded check-in URL, but only when it points back
// at this deployment.
func HandleScanner(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		renderPage(w, http.StatusOK, "scanner.html", scannerPage{BaseURL: baseURL})
	}
}
