package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/config"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	accountsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/accounts"
	assessmentsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/assessments"
	invoicesrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/invoices"
	notificationsrepo "github.com/heloise-dot/Kaziflow/internal/server/repositories/notifications"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
}

// --- in-memory fakes ---

type fakeAccountsRepo struct {
	byEmail map[string]*models.Account

	createErr error
	getErr    error
	updateErr error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{byEmail: map[string]*models.Account{}}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return nil, common.ErrorDuplicate
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.byEmail {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccountsRepo) UpdatePassword(ctx context.Context, id, hashed string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, a := range f.byEmail {
		if a.ID == id {
			a.HashedPassword = hashed
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeAccountsRepo) UpdateProfile(ctx context.Context, id, fullName, companyName string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, a := range f.byEmail {
		if a.ID == id {
			a.FullName = fullName
			a.CompanyName = companyName
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeAccountsRepo) delete(email string) {
	delete(f.byEmail, email)
}

type fakeInvoicesRepo struct {
	byID map[string]*models.Invoice

	createErr error
	listErr   error
	updateErr error
}

func newFakeInvoicesRepo() *fakeInvoicesRepo {
	return &fakeInvoicesRepo{byID: map[string]*models.Invoice{}}
}

func (f *fakeInvoicesRepo) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	inv.CreatedAt = time.Now()
	f.byID[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvoicesRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoicesRepo) ListByVendor(ctx context.Context, vendorID string) ([]*models.Invoice, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Invoice
	for _, inv := range f.byID {
		if inv.VendorID == vendorID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoicesRepo) ListAll(ctx context.Context) ([]*models.Invoice, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Invoice
	for _, inv := range f.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoicesRepo) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvoicesRepo) SetQRCode(ctx context.Context, id, qrCode string) error {
	inv, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.QRCode = qrCode
	return nil
}

func (f *fakeInvoicesRepo) SetAttachmentKey(ctx context.Context, id, key string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.AttachmentKey = key
	return nil
}

type fakeAssessmentsRepo struct {
	created []*models.RiskAssessment

	createErr error
}

func (f *fakeAssessmentsRepo) Create(ctx context.Context, a *models.RiskAssessment) (*models.RiskAssessment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAssessmentsRepo) ListByVendor(ctx context.Context, vendorID string) ([]*models.RiskAssessment, error) {
	var out []*models.RiskAssessment
	for _, a := range f.created {
		if a.VendorID == vendorID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeNotificationsRepo struct {
	created []*models.Notification

	createErr error
}

func (f *fakeNotificationsRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationsRepo) MarkRead(ctx context.Context, id, userID string) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	a *fakeAccountsRepo
	i *fakeInvoicesRepo
	r *fakeAssessmentsRepo
	n *fakeNotificationsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		a: newFakeAccountsRepo(),
		i: newFakeInvoicesRepo(),
		r: &fakeAssessmentsRepo{},
		n: &fakeNotificationsRepo{},
	}
}

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.a }
func (m *fakeRepoManager) Invoices(db dbx.DBTX) invoicesrepo.Repository { return m.i }
func (m *fakeRepoManager) Assessments(db dbx.DBTX) assessmentsrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Notifications(db dbx.DBTX) notificationsrepo.Repository {
	return m.n
}
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

type fakeSigner struct {
	key string
	url string
	err error
}

func (f *fakeSigner) PresignPut(ctx context.Context) (string, string, error) {
	return f.key, f.url, f.err
}

func (f *fakeSigner) PresignGet(ctx context.Context, key string) (string, error) {
	return f.url + "/" + key, f.err
}
