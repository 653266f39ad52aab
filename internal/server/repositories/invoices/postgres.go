package invoices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

const invoiceColumns = `id, amount, description, status, due_date, vendor_id,
	COALESCE(retailer_id, ''), qr_code, attachment_key, is_verified,
	COALESCE(ai_risk_score, 0), created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}

	query :=
		`INSERT INTO invoices (id, amount, description, status, due_date, vendor_id, retailer_id, qr_code, attachment_key, is_verified, ai_risk_score)
         VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, NULLIF($11, 0))
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		invoice.ID, invoice.Amount, invoice.Description, invoice.Status, invoice.DueDate,
		invoice.VendorID, invoice.RetailerID, invoice.QRCode, invoice.AttachmentKey,
		invoice.IsVerified, invoice.AIRiskScore).
		Scan(&invoice.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return invoice, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice := &models.Invoice{}
	err := scanInvoice(r.db.QueryRowContext(ctx, query, id), invoice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return invoice, nil
}

func (r *PostgresRepository) ListByVendor(ctx context.Context, vendorID string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE vendor_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectInvoices(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectInvoices(rows)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	return r.exec(ctx, `UPDATE invoices SET status = $2 WHERE id = $1`, id, status)
}

func (r *PostgresRepository) SetQRCode(ctx context.Context, id string, qrCode string) error {
	return r.exec(ctx, `UPDATE invoices SET qr_code = $2 WHERE id = $1`, id, qrCode)
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id string, key string) error {
	return r.exec(ctx, `UPDATE invoices SET attachment_key = $2 WHERE id = $1`, id, key)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner, invoice *models.Invoice) error {
	return row.Scan(&invoice.ID, &invoice.Amount, &invoice.Description, &invoice.Status,
		&invoice.DueDate, &invoice.VendorID, &invoice.RetailerID, &invoice.QRCode,
		&invoice.AttachmentKey, &invoice.IsVerified, &invoice.AIRiskScore, &invoice.CreatedAt)
}

func collectInvoices(rows *sql.Rows) ([]*models.Invoice, error) {
	defer rows.Close()

	var result []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := scanInvoice(rows, invoice); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
