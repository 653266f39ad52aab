// Package repomanager builds repositories over a shared database handle,
// so services can run the same repository against *sql.DB or an open
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/heloise-dot/Kaziflow/internal/dbx"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/accounts"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/assessments"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/invoices"
	"github.com/heloise-dot/Kaziflow/internal/server/repositories/notifications"
)

type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	Invoices(db dbx.DBTX) invoices.Repository
	Assessments(db dbx.DBTX) assessments.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
