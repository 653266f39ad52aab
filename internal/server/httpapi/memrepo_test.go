package httpapi

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	accountsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/accounts"
	assessmentsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/assessments"
	invoicesrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/invoices"
	notificationsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/notifications"
)

// In-memory repository manager backing the handler tests, so requests
// run through the full service stack without a database.

type memAccounts struct {
	byEmail map[string]*models.Account
}

func (m *memAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if _, ok := m.byEmail[a.Email]; ok {
		return nil, common.ErrorDuplicate
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	m.byEmail[a.Email] = a
	return a, nil
}

func (m *memAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	for _, a := range m.byEmail {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memAccounts) UpdatePassword(ctx context.Context, id, hashed string) error {
	for _, a := range m.byEmail {
		if a.ID == id {
			a.HashedPassword = hashed
			return nil
		}
	}
	return common.ErrorNotFound
}

func (m *memAccounts) UpdateProfile(ctx context.Context, id, fullName, companyName string) error {
	for _, a := range m.byEmail {
		if a.ID == id {
			a.FullName = fullName
			a.CompanyName = companyName
			return nil
		}
	}
	return common.ErrorNotFound
}

type memInvoices struct {
	byID map[string]*models.Invoice
}

func (m *memInvoices) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	inv.CreatedAt = time.Now()
	m.byID[inv.ID] = inv
	return inv, nil
}

func (m *memInvoices) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	inv, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *inv
	return &copied, nil
}

func (m *memInvoices) ListByVendor(ctx context.Context, vendorID string) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range m.byID {
		if inv.VendorID == vendorID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) ListAll(ctx context.Context) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range m.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (m *memInvoices) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	inv, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.Status = status
	return nil
}

func (m *memInvoices) SetQRCode(ctx context.Context, id, qrCode string) error {
	inv, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.QRCode = qrCode
	return nil
}

func (m *memInvoices) SetAttachmentKey(ctx context.Context, id, key string) error {
	inv, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.AttachmentKey = key
	return nil
}

type memAssessments struct {
	items []*models.RiskAssessment
}

func (m *memAssessments) Create(ctx context.Context, a *models.RiskAssessment) (*models.RiskAssessment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	m.items = append(m.items, a)
	return a, nil
}

func (m *memAssessments) ListByVendor(ctx context.Context, vendorID string) ([]*models.RiskAssessment, error) {
	var out []*models.RiskAssessment
	for _, a := range m.items {
		if a.VendorID == vendorID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memNotifications struct {
	items []*models.Notification
}

func (m *memNotifications) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	m.items = append(m.items, n)
	return n, nil
}

func (m *memNotifications) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(ctx context.Context, id, userID string) error {
	for _, n := range m.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return common.ErrorNotFound
}

type memRepoManager struct {
	accounts      *memAccounts
	invoices      *memInvoices
	assessments   *memAssessments
	notifications *memNotifications
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		accounts:      &memAccounts{byEmail: map[string]*models.Account{}},
		invoices:      &memInvoices{byID: map[string]*models.Invoice{}},
		assessments:   &memAssessments{},
		notifications: &memNotifications{},
	}
}

func (m *memRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }
func (m *memRepoManager) Invoices(db dbx.DBTX) invoicesrepo.Repository { return m.invoices }
func (m *memRepoManager) Assessments(db dbx.DBTX) assessmentsrepo.Repository {
	return m.assessments
}
func (m *memRepoManager) Notifications(db dbx.DBTX) notificationsrepo.Repository {
	return m.notifications
}
func (m *memRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

type stubSigner struct {
	key string
	url string
}

func (s *stubSigner) PresignPut(ctx context.Context) (string, string, error) {
	return s.key, s.url, nil
}

func (s *stubSigner) PresignGet(ctx context.Context, key string) (string, error) {
	return s.url + "/" + key, nil
}
