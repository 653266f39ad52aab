package services

import (
	"context"
	"database/sql"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/repomanager"
)

// NotificationService lists and acknowledges per-account notifications.
type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{
		db:          db,
		repomanager: m,
	}
}

// List returns the account's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, account *models.Account) ([]*models.Notification, error) {
	return s.repomanager.Notifications(s.db).ListByUser(ctx, account.ID)
}

// MarkRead acknowledges one notification. Ownership is enforced in the
// repository: other accounts' notifications read as not found.
func (s *NotificationService) MarkRead(ctx context.Context, account *models.Account, id string) error {
	return s.repomanager.Notifications(s.db).MarkRead(ctx, id, account.ID)
}
