package httpapi

import (
	"net/http"
	"strings"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

func (h *Handlers) handleRiskAnalyze(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if err := h.guard.RequireRole(account, models.RoleBank, models.RoleAdmin); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	vendorID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/risk/analyze/"), "/")
	if vendorID == "" {
		writeError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	assessment, err := h.risk.Analyze(r.Context(), vendorID)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAssessmentResponse(assessment))
}

func (h *Handlers) handleRiskHistory(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	vendorID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/risk/vendor/"), "/")
	if vendorID == "" {
		writeError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	// Vendors may read their own history; banks and admins read any.
	allowed := account.Role == models.RoleBank || account.Role == models.RoleAdmin ||
		(account.Role == models.RoleVendor && account.ID == vendorID)
	if !allowed {
		writeServiceError(r.Context(), w, h.logger, common.ErrorForbidden)
		return
	}

	assessments, err := h.risk.ListByVendor(r.Context(), vendorID)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	out := make([]assessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, toAssessmentResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}
