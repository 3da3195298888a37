package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stujob/stujob/internal/common"
)

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("a@madi.ru", "hash", "Иван", "МАДИ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email_confirmed", "created_at"}).
			AddRow("acc-1", false, now))

	account, err := repo.Create(context.Background(), &Account{
		Email: "a@madi.ru", PasswordHash: "hash", Name: "Иван", University: "МАДИ",
	})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.False(t, account.EmailConfirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(context.Background(), &Account{Email: "a@madi.ru"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("missing@madi.ru").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByEmail(context.Background(), "missing@madi.ru")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresConfirmEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	mock.ExpectExec("UPDATE accounts SET email_confirmed").
		WithArgs("acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ConfirmEmail(context.Background(), "acc-1"))

	mock.ExpectExec("UPDATE accounts SET email_confirmed").
		WithArgs("acc-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ConfirmEmail(context.Background(), "acc-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresCreateOtherError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.Create(context.Background(), &Account{Email: "a@madi.ru"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}
