package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/qr"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

// AttachmentSigner produces presigned URLs for invoice documents.
// Implemented by AttachmentService over S3-compatible storage.
type AttachmentSigner interface {
	PresignPut(ctx context.Context) (key string, url string, err error)
	PresignGet(ctx context.Context, key string) (url string, err error)
}

// InvoiceService implements invoice submission, listing, and the status
// lifecycle.
type InvoiceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	signer      AttachmentSigner
}

func NewInvoiceService(db *sql.DB, m repomanager.RepositoryManager, signer AttachmentSigner) *InvoiceService {
	return &InvoiceService{
		db:          db,
		repomanager: m,
		signer:      signer,
	}
}

// CreateInvoiceInput carries a vendor's invoice submission.
type CreateInvoiceInput struct {
	Amount      float64
	Description string
	DueDate     time.Time
	RetailerID  string
}

// Create persists a new pending invoice for the vendor, with its QR code
// rendered up front so the insert commits as one unit.
func (s *InvoiceService) Create(ctx context.Context, vendor *models.Account, input CreateInvoiceInput) (*models.Invoice, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", common.ErrorValidation)
	}

	if input.RetailerID != "" {
		retailer, err := s.repomanager.Accounts(s.db).GetByID(ctx, input.RetailerID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("%w: unknown retailer", common.ErrorValidation)
			}
			return nil, fmt.Errorf("error checking retailer: %w", err)
		}
		if retailer.Role != models.RoleRetailer {
			return nil, fmt.Errorf("%w: account is not a retailer", common.ErrorValidation)
		}
	}

	id := uuid.NewString()
	qrCode, err := qr.InvoiceDataURL(id)
	if err != nil {
		return nil, fmt.Errorf("error rendering qr code: %w", err)
	}

	invoice := &models.Invoice{
		ID:          id,
		Amount:      input.Amount,
		Description: input.Description,
		Status:      models.InvoiceStatusPending,
		DueDate:     input.DueDate,
		VendorID:    vendor.ID,
		RetailerID:  input.RetailerID,
		QRCode:      qrCode,
	}

	created, err := s.repomanager.Invoices(s.db).Create(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("error creating invoice: %w", err)
	}
	return created, nil
}

// List returns the invoices visible to the account: vendors see only
// their own, every other role sees all.
func (s *InvoiceService) List(ctx context.Context, account *models.Account) ([]*models.Invoice, error) {
	repo := s.repomanager.Invoices(s.db)
	if account.Role == models.RoleVendor {
		return repo.ListByVendor(ctx, account.ID)
	}
	return repo.ListAll(ctx)
}

// Get loads one invoice, enforcing vendor ownership.
func (s *InvoiceService) Get(ctx context.Context, account *models.Account, id string) (*models.Invoice, error) {
	invoice, err := s.repomanager.Invoices(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Role == models.RoleVendor && invoice.VendorID != account.ID {
		return nil, common.ErrorForbidden
	}
	return invoice, nil
}

// UpdateStatus advances the invoice lifecycle and notifies the vendor in
// the same transaction. Invalid transitions report ErrorValidation.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, next models.InvoiceStatus) (*models.Invoice, error) {
	invoice, err := s.repomanager.Invoices(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move invoice from %s to %s", common.ErrorValidation, invoice.Status, next)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Invoices(tx).UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		_, err := s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
			UserID:  invoice.VendorID,
			Title:   "Invoice status updated",
			Message: fmt.Sprintf("Invoice %q is now %s.", invoice.Description, next),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating invoice status: %w", err)
	}

	invoice.Status = next
	return invoice, nil
}

// AttachmentUploadURL issues a presigned PUT URL for the invoice's
// document and records the storage key. Only the owning vendor may
// upload.
func (s *InvoiceService) AttachmentUploadURL(ctx context.Context, vendor *models.Account, id string) (string, error) {
	invoice, err := s.Get(ctx, vendor, id)
	if err != nil {
		return "", err
	}
	if invoice.VendorID != vendor.ID {
		return "", common.ErrorForbidden
	}

	key, url, err := s.signer.PresignPut(ctx)
	if err != nil {
		return "", fmt.Errorf("error presigning upload: %w", err)
	}

	if err := s.repomanager.Invoices(s.db).SetAttachmentKey(ctx, id, key); err != nil {
		return "", fmt.Errorf("error storing attachment key: %w", err)
	}
	return url, nil
}

// AttachmentDownloadURL issues a presigned GET URL for the invoice's
// stored document.
func (s *InvoiceService) AttachmentDownloadURL(ctx context.Context, account *models.Account, id string) (string, error) {
	invoice, err := s.Get(ctx, account, id)
	if err != nil {
		return "", err
	}
	if invoice.AttachmentKey == "" {
		return "", common.ErrorNotFound
	}

	url, err := s.signer.PresignGet(ctx, invoice.AttachmentKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
