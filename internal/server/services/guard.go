package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/server/auth"
	"github.com/heloise-dot/Kaziflow/internal/server/config"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

// Guard resolves bearer tokens to accounts and enforces role checks.
// Resolution is a pure read: it never mutates state.
type Guard struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
}

func NewGuard(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *Guard {
	return &Guard{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

// Resolve verifies the token and loads the referenced account. Any
// failure (bad token, expired token, account no longer exists) reports
// ErrorUnauthenticated without revealing which check failed. Tokens
// issued for since-deleted or renamed accounts therefore stop working
// immediately.
func (g *Guard) Resolve(ctx context.Context, token string) (*models.Account, error) {
	email, _, err := auth.ParseToken(token, g.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}

	repo := g.repomanager.Accounts(g.db)
	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// RequireRole checks the resolved account's current role against the
// permitted set for an operation. The stored role governs, not the role
// claim baked into the token.
func (g *Guard) RequireRole(account *models.Account, roles ...models.Role) error {
	for _, r := range roles {
		if account.Role == r {
			return nil
		}
	}
	return common.ErrorForbidden
}
