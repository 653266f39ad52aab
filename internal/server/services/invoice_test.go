package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

func testVendor() *models.Account {
	return &models.Account{ID: "vendor-1", Email: "vendor@agri.rw", Role: models.RoleVendor}
}

func testBank() *models.Account {
	return &models.Account{ID: "bank-1", Email: "bank@bk.rw", Role: models.RoleBank}
}

func validInvoiceInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		Amount:      2500000,
		Description: "Maize delivery, July",
		DueDate:     time.Now().AddDate(0, 1, 0),
	}
}

func TestInvoiceServiceCreate(t *testing.T) {
	m := newFakeRepoManager()
	s := NewInvoiceService(nil, m, &fakeSigner{})

	created, err := s.Create(context.Background(), testVendor(), validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.Status != models.InvoiceStatusPending {
		t.Errorf("expected pending status, got %q", created.Status)
	}
	if created.VendorID != "vendor-1" {
		t.Errorf("expected vendor id, got %q", created.VendorID)
	}
	if !strings.HasPrefix(created.QRCode, "data:image/png;base64,") {
		t.Errorf("expected data-url qr code, got %.40q", created.QRCode)
	}
}

func TestInvoiceServiceCreateValidation(t *testing.T) {
	m := newFakeRepoManager()
	s := NewInvoiceService(nil, m, &fakeSigner{})
	ctx := context.Background()

	bad := validInvoiceInput()
	bad.Amount = 0
	if _, err := s.Create(ctx, testVendor(), bad); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("zero amount: expected ErrorValidation, got %v", err)
	}

	bad = validInvoiceInput()
	bad.Description = "  "
	if _, err := s.Create(ctx, testVendor(), bad); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("blank description: expected ErrorValidation, got %v", err)
	}

	bad = validInvoiceInput()
	bad.DueDate = time.Time{}
	if _, err := s.Create(ctx, testVendor(), bad); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("zero due date: expected ErrorValidation, got %v", err)
	}

	bad = validInvoiceInput()
	bad.RetailerID = "missing"
	if _, err := s.Create(ctx, testVendor(), bad); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("unknown retailer: expected ErrorValidation, got %v", err)
	}
}

func TestInvoiceServiceCreateRetailerRoleChecked(t *testing.T) {
	m := newFakeRepoManager()
	s := NewInvoiceService(nil, m, &fakeSigner{})
	ctx := context.Background()

	bank := testBank()
	m.a.byEmail[bank.Email] = bank

	input := validInvoiceInput()
	input.RetailerID = bank.ID
	if _, err := s.Create(ctx, testVendor(), input); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("non-retailer counterparty: expected ErrorValidation, got %v", err)
	}

	retailer := &models.Account{ID: "retailer-1", Email: "simba@retail.rw", Role: models.RoleRetailer}
	m.a.byEmail[retailer.Email] = retailer

	input.RetailerID = retailer.ID
	created, err := s.Create(ctx, testVendor(), input)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.RetailerID != retailer.ID {
		t.Errorf("expected retailer id %q, got %q", retailer.ID, created.RetailerID)
	}
}

func TestInvoiceServiceListScoping(t *testing.T) {
	m := newFakeRepoManager()
	s := NewInvoiceService(nil, m, &fakeSigner{})
	ctx := context.Background()

	vendor := testVendor()
	other := &models.Account{ID: "vendor-2", Email: "farmer@coop.rw", Role: models.RoleVendor}

	if _, err := s.Create(ctx, vendor, validInvoiceInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(ctx, other, validInvoiceInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mine, err := s.List(ctx, vendor)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(mine) != 1 || mine[0].VendorID != vendor.ID {
		t.Errorf("vendor list leaked other invoices: %d", len(mine))
	}

	all, err := s.List(ctx, testBank())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected bank to see 2 invoices, got %d", len(all))
	}
}

func TestInvoiceServiceGetOwnership(t *testing.T) {
	m := newFakeRepoManager()
	s := NewInvoiceService(nil, m, &fakeSigner{})
	ctx := context.Background()

	vendor := testVendor()
	created, err := s.Create(ctx, vendor, validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := s.Get(ctx, vendor, created.ID); err != nil {
		t.Errorf("owner denied: %v", err)
	}

	other := &models.Account{ID: "vendor-2", Role: models.RoleVendor}
	if _, err := s.Get(ctx, other, created.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Errorf("expected ErrorForbidden for other vendor, got %v", err)
	}

	if _, err := s.Get(ctx, testBank(), created.ID); err != nil {
		t.Errorf("bank denied: %v", err)
	}

	if _, err := s.Get(ctx, vendor, "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestInvoiceServiceUpdateStatus(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	m := newFakeRepoManager()
	s := NewInvoiceService(db, m, &fakeSigner{})
	ctx := context.Background()

	created, err := s.Create(ctx, testVendor(), validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated, err := s.UpdateStatus(ctx, created.ID, models.InvoiceStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != models.InvoiceStatusApproved {
		t.Errorf("expected approved, got %q", updated.Status)
	}

	stored, _ := m.i.GetByID(ctx, created.ID)
	if stored.Status != models.InvoiceStatusApproved {
		t.Errorf("status not persisted: %q", stored.Status)
	}

	if len(m.n.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(m.n.created))
	}
	if m.n.created[0].UserID != created.VendorID {
		t.Errorf("notification sent to %q, want vendor", m.n.created[0].UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInvoiceServiceUpdateStatusInvalidTransition(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	m := newFakeRepoManager()
	s := NewInvoiceService(db, m, &fakeSigner{})
	ctx := context.Background()

	created, err := s.Create(ctx, testVendor(), validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// pending cannot jump straight to paid
	if _, err := s.UpdateStatus(ctx, created.ID, models.InvoiceStatusPaid); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("expected ErrorValidation, got %v", err)
	}
	if len(m.n.created) != 0 {
		t.Errorf("notification created for rejected transition")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected db activity: %v", err)
	}

	if _, err := s.UpdateStatus(ctx, "missing", models.InvoiceStatusApproved); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestInvoiceServiceUpdateStatusRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	m := newFakeRepoManager()
	m.n.createErr = errBoom{}
	s := NewInvoiceService(db, m, &fakeSigner{})
	ctx := context.Background()

	created, err := s.Create(ctx, testVendor(), validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	if _, err := s.UpdateStatus(ctx, created.ID, models.InvoiceStatusApproved); err == nil {
		t.Fatal("expected error when notification insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInvoiceServiceAttachmentUploadURL(t *testing.T) {
	m := newFakeRepoManager()
	signer := &fakeSigner{key: "invoices/2026/8/31/abc", url: "https://s3.local/put"}
	s := NewInvoiceService(nil, m, signer)
	ctx := context.Background()

	vendor := testVendor()
	created, err := s.Create(ctx, vendor, validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	url, err := s.AttachmentUploadURL(ctx, vendor, created.ID)
	if err != nil {
		t.Fatalf("AttachmentUploadURL error: %v", err)
	}
	if url != signer.url {
		t.Errorf("expected %q, got %q", signer.url, url)
	}

	stored, _ := m.i.GetByID(ctx, created.ID)
	if stored.AttachmentKey != signer.key {
		t.Errorf("attachment key not recorded: %q", stored.AttachmentKey)
	}

	other := &models.Account{ID: "vendor-2", Role: models.RoleVendor}
	if _, err := s.AttachmentUploadURL(ctx, other, created.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Errorf("expected ErrorForbidden for other vendor, got %v", err)
	}
}

func TestInvoiceServiceAttachmentDownloadURL(t *testing.T) {
	m := newFakeRepoManager()
	signer := &fakeSigner{key: "invoices/2026/8/31/abc", url: "https://s3.local"}
	s := NewInvoiceService(nil, m, signer)
	ctx := context.Background()

	vendor := testVendor()
	created, err := s.Create(ctx, vendor, validInvoiceInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// no attachment uploaded yet
	if _, err := s.AttachmentDownloadURL(ctx, vendor, created.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound before upload, got %v", err)
	}

	if _, err := s.AttachmentUploadURL(ctx, vendor, created.ID); err != nil {
		t.Fatalf("AttachmentUploadURL error: %v", err)
	}

	url, err := s.AttachmentDownloadURL(ctx, testBank(), created.ID)
	if err != nil {
		t.Fatalf("AttachmentDownloadURL error: %v", err)
	}
	want := signer.url + "/" + signer.key
	if url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}
