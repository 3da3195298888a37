// Package db wires the Postgres connection, repositories, and migrations
// behind a single RepositoryManager.
package db

import (
	"context"
	"database/sql"

	"github.com/stujob/stujob/internal/server/accounts"
	"github.com/stujob/stujob/internal/server/students"
	"github.com/stujob/stujob/internal/server/vacancies"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Accounts() accounts.Repository
	Students() students.Repository
	Vacancies() vacancies.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
