package httpapi

import (
	"net/http"
	"strings"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

func (h *Handlers) handleNotifications(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	notifications, err := h.notifications.List(r.Context(), account)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleNotificationRead serves POST /notifications/{id}/read.
func (h *Handlers) handleNotificationRead(w http.ResponseWriter, r *http.Request, account *models.Account) {
	rest := strings.TrimPrefix(r.URL.Path, "/notifications/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "read" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), account, parts[0]); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
