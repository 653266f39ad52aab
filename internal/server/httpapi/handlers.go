// Package httpapi exposes the JSON/HTTP surface of the backend: auth,
// invoices, risk assessments and notifications, plus the logging and
// CORS middleware around them.
package httpapi

import (
	"time"

	"github.com/heloise-dot/Kaziflow/internal/logging"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/services"
)

// Handlers bundles the route handlers and their service dependencies.
type Handlers struct {
	logger        logging.Logger
	guard         *services.Guard
	accounts      *services.AccountService
	invoices      *services.InvoiceService
	risk          *services.RiskService
	notifications *services.NotificationService
}

func NewHandlers(
	logger logging.Logger,
	guard *services.Guard,
	accounts *services.AccountService,
	invoices *services.InvoiceService,
	risk *services.RiskService,
	notifications *services.NotificationService,
) *Handlers {
	return &Handlers{
		logger:        logger.With("module", "httpapi"),
		guard:         guard,
		accounts:      accounts,
		invoices:      invoices,
		risk:          risk,
		notifications: notifications,
	}
}

// --- response DTOs ---

// accountResponse is the public projection of an account. The hashed
// credential never crosses this boundary.
type accountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toAccountResponse(a *models.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        string(a.Role),
		CompanyName: a.CompanyName,
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

type invoiceResponse struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	DueDate       string  `json:"due_date"`
	VendorID      string  `json:"vendor_id"`
	RetailerID    string  `json:"retailer_id,omitempty"`
	QRCode        string  `json:"qr_code,omitempty"`
	HasAttachment bool    `json:"has_attachment"`
	IsVerified    bool    `json:"is_verified"`
	AIRiskScore   int     `json:"ai_risk_score,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func toInvoiceResponse(inv *models.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		Amount:        inv.Amount,
		Description:   inv.Description,
		Status:        string(inv.Status),
		DueDate:       formatTime(inv.DueDate),
		VendorID:      inv.VendorID,
		RetailerID:    inv.RetailerID,
		QRCode:        inv.QRCode,
		HasAttachment: inv.AttachmentKey != "",
		IsVerified:    inv.IsVerified,
		AIRiskScore:   inv.AIRiskScore,
		CreatedAt:     formatTime(inv.CreatedAt),
	}
}

func toInvoiceResponses(invoices []*models.Invoice) []invoiceResponse {
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out
}

type assessmentResponse struct {
	ID        string              `json:"id"`
	VendorID  string              `json:"vendor_id"`
	Score     int                 `json:"score"`
	Level     string              `json:"level"`
	Reasoning string              `json:"reasoning"`
	Factors   []models.RiskFactor `json:"factors"`
	CreatedAt string              `json:"created_at"`
}

func toAssessmentResponse(a *models.RiskAssessment) assessmentResponse {
	factors := a.Factors
	if factors == nil {
		factors = []models.RiskFactor{}
	}
	return assessmentResponse{
		ID:        a.ID,
		VendorID:  a.VendorID,
		Score:     a.Score,
		Level:     a.Level,
		Reasoning: a.Reasoning,
		Factors:   factors,
		CreatedAt: formatTime(a.CreatedAt),
	}
}

type notificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func toNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
