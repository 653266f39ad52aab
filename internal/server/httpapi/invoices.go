package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/services"
)

type createInvoiceRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	RetailerID  string  `json:"retailer_id"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type attachmentURLResponse struct {
	URL string `json:"url"`
}

func (h *Handlers) handleInvoices(w http.ResponseWriter, r *http.Request, account *models.Account) {
	switch r.Method {
	case http.MethodPost:
		h.createInvoice(w, r, account)
	case http.MethodGet:
		h.listInvoices(w, r, account)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleInvoiceByID serves /invoices/{id} and its sub-resources
// {id}/status, {id}/attachment-url and {id}/attachment.
func (h *Handlers) handleInvoiceByID(w http.ResponseWriter, r *http.Request, account *models.Account) {
	rest := strings.TrimPrefix(r.URL.Path, "/invoices/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if parts[0] == "" {
		writeError(w, http.StatusBadRequest, "invoice ID is required")
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		h.getInvoice(w, r, account, id)
	case len(parts) == 2 && parts[1] == "status":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.updateInvoiceStatus(w, r, account, id)
	case len(parts) == 2 && parts[1] == "attachment-url":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.invoiceAttachmentUploadURL(w, r, account, id)
	case len(parts) == 2 && parts[1] == "attachment":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		h.invoiceAttachmentDownloadURL(w, r, account, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handlers) createInvoice(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if err := h.guard.RequireRole(account, models.RoleVendor); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	var payload createInvoiceRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dueDate time.Time
	if payload.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, payload.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due_date")
			return
		}
		dueDate = parsed
	}

	invoice, err := h.invoices.Create(r.Context(), account, services.CreateInvoiceInput{
		Amount:      payload.Amount,
		Description: payload.Description,
		DueDate:     dueDate,
		RetailerID:  payload.RetailerID,
	})
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toInvoiceResponse(invoice))
}

func (h *Handlers) listInvoices(w http.ResponseWriter, r *http.Request, account *models.Account) {
	invoices, err := h.invoices.List(r.Context(), account)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toInvoiceResponses(invoices))
}

func (h *Handlers) getInvoice(w http.ResponseWriter, r *http.Request, account *models.Account, id string) {
	invoice, err := h.invoices.Get(r.Context(), account, id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *Handlers) updateInvoiceStatus(w http.ResponseWriter, r *http.Request, account *models.Account, id string) {
	if err := h.guard.RequireRole(account, models.RoleBank, models.RoleAdmin); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	var payload updateStatusRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, ok := models.ParseInvoiceStatus(payload.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	invoice, err := h.invoices.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *Handlers) invoiceAttachmentUploadURL(w http.ResponseWriter, r *http.Request, account *models.Account, id string) {
	url, err := h.invoices.AttachmentUploadURL(r.Context(), account, id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, attachmentURLResponse{URL: url})
}

func (h *Handlers) invoiceAttachmentDownloadURL(w http.ResponseWriter, r *http.Request, account *models.Account, id string) {
	url, err := h.invoices.AttachmentDownloadURL(r.Context(), account, id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, attachmentURLResponse{URL: url})
}
