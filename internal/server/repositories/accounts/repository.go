package accounts

import (
	"context"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

// Repository is the account directory: create and look up accounts by
// their unique email, and update the mutable fields.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
	UpdateProfile(ctx context.Context, id string, fullName, companyName string) error
}
