package assessments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, assessment *models.RiskAssessment) (*models.RiskAssessment, error) {

	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}

	factors, err := json.Marshal(assessment.Factors)
	if err != nil {
		return nil, fmt.Errorf("factors marshal error: %w", err)
	}

	query :=
		`INSERT INTO risk_assessments (id, vendor_id, score, level, reasoning, factors)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		assessment.ID, assessment.VendorID, assessment.Score, assessment.Level,
		assessment.Reasoning, factors).
		Scan(&assessment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return assessment, nil
}

func (r *PostgresRepository) ListByVendor(ctx context.Context, vendorID string) ([]*models.RiskAssessment, error) {
	query :=
		`SELECT id, vendor_id, score, level, reasoning, factors, created_at FROM risk_assessments
		 WHERE vendor_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RiskAssessment
	for rows.Next() {
		a := &models.RiskAssessment{}
		var factors []byte
		if err := rows.Scan(&a.ID, &a.VendorID, &a.Score, &a.Level, &a.Reasoning, &factors, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if len(factors) > 0 {
			if err := json.Unmarshal(factors, &a.Factors); err != nil {
				return nil, fmt.Errorf("factors unmarshal error: %w", err)
			}
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
