package invoices

import (
	"context"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*models.Invoice, error)
	ListAll(ctx context.Context) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error
	SetQRCode(ctx context.Context, id string, qrCode string) error
	SetAttachmentKey(ctx context.Context, id string, key string) error
}
