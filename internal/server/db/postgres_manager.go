package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/stujob/stujob/internal/server/accounts"
	"github.com/stujob/stujob/internal/server/migrations"
	"github.com/stujob/stujob/internal/server/students"
	"github.com/stujob/stujob/internal/server/vacancies"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	accounts  accounts.Repository
	students  students.Repository
	vacancies vacancies.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *PostgresRepositoryManager) Students() students.Repository {
	return m.students
}

func (m *PostgresRepositoryManager) Vacancies() vacancies.Repository {
	return m.vacancies
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	accountsRepo, err := accounts.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("accounts repo creation error: %w", err)
	}

	studentsRepo, err := students.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("students repo creation error: %w", err)
	}

	vacanciesRepo, err := vacancies.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("vacancies repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		accounts:  accountsRepo,
		students:  studentsRepo,
		vacancies: vacanciesRepo,
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
