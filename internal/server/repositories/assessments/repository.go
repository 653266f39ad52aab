package assessments

import (
	"context"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, assessment *models.RiskAssessment) (*models.RiskAssessment, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*models.RiskAssessment, error)
}
