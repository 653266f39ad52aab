package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/ai"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

// Scorer produces a risk verdict for a vendor snapshot. Implemented by
// ai.Client.
type Scorer interface {
	Score(ctx context.Context, data ai.VendorData) *ai.Result
}

// RiskService runs vendor risk assessments and keeps their history.
type RiskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scorer      Scorer
}

func NewRiskService(db *sql.DB, m repomanager.RepositoryManager, scorer Scorer) *RiskService {
	return &RiskService{
		db:          db,
		repomanager: m,
		scorer:      scorer,
	}
}

// Analyze scores the vendor's invoice history, persists the assessment,
// and notifies the vendor in one transaction. The vendor must exist and
// hold the vendor role.
func (s *RiskService) Analyze(ctx context.Context, vendorID string) (*models.RiskAssessment, error) {
	vendor, err := s.repomanager.Accounts(s.db).GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading vendor: %w", err)
	}
	if vendor.Role != models.RoleVendor {
		return nil, fmt.Errorf("%w: account is not a vendor", common.ErrorValidation)
	}

	invoices, err := s.repomanager.Invoices(s.db).ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("error loading vendor invoices: %w", err)
	}

	data := ai.VendorData{
		VendorID:     vendorID,
		InvoiceCount: len(invoices),
		HistoryYears: int(time.Since(vendor.CreatedAt).Hours() / (24 * 365)),
	}
	for _, inv := range invoices {
		data.TransactionVolume += inv.Amount
		if inv.Status == models.InvoiceStatusPaid {
			data.PaidInvoiceCount++
		}
	}

	verdict := s.scorer.Score(ctx, data)

	assessment := &models.RiskAssessment{
		VendorID:  vendorID,
		Score:     verdict.Score,
		Level:     verdict.Level,
		Reasoning: verdict.Reasoning,
		Factors:   verdict.Factors,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Assessments(tx).Create(ctx, assessment)
		if err != nil {
			return err
		}
		assessment = created

		_, err = s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
			UserID:  vendorID,
			Title:   "Risk assessment completed",
			Message: fmt.Sprintf("Your risk score is %d (%s).", verdict.Score, verdict.Level),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error saving assessment: %w", err)
	}

	return assessment, nil
}

// ListByVendor returns the vendor's assessment history, newest first.
func (s *RiskService) ListByVendor(ctx context.Context, vendorID string) ([]*models.RiskAssessment, error) {
	return s.repomanager.Assessments(s.db).ListByVendor(ctx, vendorID)
}
