// Command seed loads a demo dataset (accounts, invoices with QR codes,
// notifications) into the configured database. It is idempotent: when
// any account already exists the run is skipped.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/heloise-dot/Kaziflow/internal/server/auth"
	"github.com/heloise-dot/Kaziflow/internal/server/config"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/qr"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

const defaultPassword = "password123"

type seedAccount struct {
	email       string
	fullName    string
	role        models.Role
	companyName string
}

var seedAccounts = []seedAccount{
	{"admin@kaziflow.com", "System Administrator", models.RoleAdmin, "KaziFlow HQ"},
	{"bank@bk.rw", "BK Financing Officer", models.RoleBank, "Bank of Kigali"},
	{"simba@retail.rw", "Simba Supermarket Manager", models.RoleRetailer, "Simba Supermarket"},
	{"vendor@agri.rw", "Jean Bosco", models.RoleVendor, "Bosco Agri-Supplies"},
	{"farmer@coop.rw", "Alice Mutoni", models.RoleVendor, "Musanze Farmer Group"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := run(ctx, db, m); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("error checking existing data: %w", err)
	}
	if count > 0 {
		log.Println("database already contains data, skipping seeding")
		return nil
	}

	adminPassword := promptAdminPassword()

	log.Println("seeding accounts...")
	created := map[string]*models.Account{}
	for _, sa := range seedAccounts {
		password := defaultPassword
		if sa.role == models.RoleAdmin {
			password = adminPassword
		}
		hashed, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("error hashing password for %s: %w", sa.email, err)
		}

		account, err := m.Accounts(db).Create(ctx, &models.Account{
			Email:          sa.email,
			FullName:       sa.fullName,
			Role:           sa.role,
			CompanyName:    sa.companyName,
			HashedPassword: hashed,
		})
		if err != nil {
			return fmt.Errorf("error creating account %s: %w", sa.email, err)
		}
		created[sa.email] = account
	}

	log.Println("seeding invoices...")
	vendor := created["vendor@agri.rw"]
	farmer := created["farmer@coop.rw"]
	retailer := created["simba@retail.rw"]

	invoices := []*models.Invoice{
		{
			Amount:      750000,
			Description: "Supply of 500kg Premium Coffee Beans",
			Status:      models.InvoiceStatusApproved,
			DueDate:     time.Now().UTC().AddDate(0, 0, 30),
			VendorID:    vendor.ID,
			RetailerID:  retailer.ID,
			IsVerified:  true,
			AIRiskScore: 92,
		},
		{
			Amount:      1200000,
			Description: "Delivery of Organic Fertilizer - Batch 44",
			Status:      models.InvoiceStatusPending,
			DueDate:     time.Now().UTC().AddDate(0, 0, 45),
			VendorID:    vendor.ID,
			RetailerID:  retailer.ID,
		},
		{
			Amount:      300000,
			Description: "Fresh Vegetables - Weekly Supply",
			Status:      models.InvoiceStatusPaid,
			DueDate:     time.Now().UTC().AddDate(0, 0, -5),
			VendorID:    farmer.ID,
			RetailerID:  retailer.ID,
			IsVerified:  true,
			AIRiskScore: 85,
		},
	}

	for _, invoice := range invoices {
		invoice.ID = uuid.NewString()
		qrCode, err := qr.InvoiceDataURL(invoice.ID)
		if err != nil {
			return fmt.Errorf("error rendering qr code: %w", err)
		}
		invoice.QRCode = qrCode

		if _, err := m.Invoices(db).Create(ctx, invoice); err != nil {
			return fmt.Errorf("error creating invoice: %w", err)
		}
	}

	log.Println("seeding notifications...")
	notifications := []*models.Notification{
		{
			UserID:  vendor.ID,
			Title:   "Invoice status updated",
			Message: fmt.Sprintf("Invoice %q is now %s.", invoices[0].Description, invoices[0].Status),
		},
		{
			UserID:  farmer.ID,
			Title:   "Invoice status updated",
			Message: fmt.Sprintf("Invoice %q is now %s.", invoices[2].Description, invoices[2].Status),
		},
	}
	for _, n := range notifications {
		if _, err := m.Notifications(db).Create(ctx, n); err != nil {
			return fmt.Errorf("error creating notification: %w", err)
		}
	}

	log.Println("data seeding completed successfully")
	return nil
}

// promptAdminPassword reads the admin password without echo when stdin
// is a terminal, otherwise it falls back to the demo default.
func promptAdminPassword() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return defaultPassword
	}

	fmt.Print("admin password (empty for default): ")
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil || len(raw) == 0 {
		return defaultPassword
	}
	return string(raw)
}
