// Package services contains server-side business logic: account
// registration and login, token-based authorization, invoices, risk
// assessments, and notifications.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/server/auth"
	"github.com/heloise-dot/Kaziflow/internal/server/config"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

// AccountService handles registration, login, and credential updates.
type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	CompanyName string
}

// Register creates a new account with a freshly hashed credential.
// A taken email reports ErrorDuplicate; malformed input reports
// ErrorValidation. The returned account still carries the hashed
// credential; boundary layers must project it away.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", common.ErrorValidation)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", common.ErrorValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	role, ok := models.ParseRole(input.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, input.Role)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %s", common.ErrorValidation, err)
		}
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		Email:          email,
		FullName:       input.FullName,
		Role:           role,
		CompanyName:    input.CompanyName,
		HashedPassword: hashed,
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, common.ErrorDuplicate
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and issues a session token bound to the
// account's current email and role. Unknown email and wrong password are
// indistinguishable: both report ErrorInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.VerifyPassword(password, account.HashedPassword) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(account.Email, account.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ChangePassword replaces the account's credential. The current password
// must re-verify; after commit, only the new password logs in.
func (s *AccountService) ChangePassword(ctx context.Context, account *models.Account, currentPassword, newPassword string) error {
	if !auth.VerifyPassword(currentPassword, account.HashedPassword) {
		return common.ErrorInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return fmt.Errorf("%w: %s", common.ErrorValidation, err)
		}
		return common.ErrorInternal
	}

	repo := s.repomanager.Accounts(s.db)
	if err := repo.UpdatePassword(ctx, account.ID, hashed); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName    *string
	CompanyName *string
}

// UpdateProfile applies a partial profile update and returns the fresh
// account state.
func (s *AccountService) UpdateProfile(ctx context.Context, account *models.Account, update ProfileUpdate) (*models.Account, error) {
	fullName := account.FullName
	if update.FullName != nil {
		if strings.TrimSpace(*update.FullName) == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", common.ErrorValidation)
		}
		fullName = *update.FullName
	}
	companyName := account.CompanyName
	if update.CompanyName != nil {
		companyName = *update.CompanyName
	}

	repo := s.repomanager.Accounts(s.db)
	if err := repo.UpdateProfile(ctx, account.ID, fullName, companyName); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	updated := *account
	updated.FullName = fullName
	updated.CompanyName = companyName
	return &updated, nil
}
