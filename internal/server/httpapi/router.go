package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/logging"
)

// Pinger reports backend storage health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter wires the HTTP routes exposed by the backend API.
func NewRouter(logger logging.Logger, h *Handlers, db Pinger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				logger.Error(ctx, "health probe failed", "error", err.Error())
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
			}
		}

		respondJSON(w, status, payload)
	})

	mux.HandleFunc("/auth/register", h.handleRegister)
	mux.HandleFunc("/auth/token", h.handleToken)
	mux.HandleFunc("/auth/me", h.withAccount(h.handleMe))
	mux.HandleFunc("/auth/change-password", h.withAccount(h.handleChangePassword))

	mux.HandleFunc("/invoices", h.withAccount(h.handleInvoices))
	mux.HandleFunc("/invoices/", h.withAccount(h.handleInvoiceByID))

	mux.HandleFunc("/risk/analyze/", h.withAccount(h.handleRiskAnalyze))
	mux.HandleFunc("/risk/vendor/", h.withAccount(h.handleRiskHistory))

	mux.HandleFunc("/notifications", h.withAccount(h.handleNotifications))
	mux.HandleFunc("/notifications/", h.withAccount(h.handleNotificationRead))

	handler := http.Handler(loggingMiddleware(logger, mux))
	if len(allowedOrigins) > 0 {
		handler = corsMiddleware(allowedOrigins)(handler)
	}
	return handler
}
