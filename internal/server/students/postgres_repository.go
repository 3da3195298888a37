package students

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/dbx"
)

const uniqueViolationCode = "23505"

// selectColumns is shared by every read query. Skills are stored as jsonb.
const selectColumns = `account_id, name, email, university, major_code, course,
	skills, resume_url, telegram, about, profile_completion, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func scanStudent(row *sql.Row) (*Student, error) {
	s := &Student{}
	var skills []byte
	err := row.Scan(&s.AccountID, &s.Name, &s.Email, &s.University, &s.MajorCode,
		&s.Course, &skills, &s.ResumeURL, &s.Telegram, &s.About,
		&s.ProfileCompletion, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &s.Skills); err != nil {
			return nil, fmt.Errorf("error decoding skills: %w", err)
		}
	}
	return s, nil
}

func (r *PostgresRepository) GetByAccountID(ctx context.Context, accountID string) (*Student, error) {
	query := `SELECT ` + selectColumns + ` FROM students WHERE account_id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, accountID))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Student, error) {
	query := `SELECT ` + selectColumns + ` FROM students WHERE email = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) Insert(ctx context.Context, student *Student) (*Student, error) {
	skills, err := json.Marshal(student.Skills)
	if err != nil {
		return nil, fmt.Errorf("error encoding skills: %w", err)
	}

	query :=
		`INSERT INTO students (account_id, name, email, university, major_code,
		                       course, skills, resume_url, telegram, about, profile_completion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		student.AccountID, student.Name, student.Email, student.University,
		student.MajorCode, student.Course, skills, student.ResumeURL,
		student.Telegram, student.About, student.ProfileCompletion).
		Scan(&student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return student, nil
}

// Update applies the non-nil fields of upd to the row for accountID and bumps
// updated_at. AccountID and CreatedAt cannot be changed through this path.
func (r *PostgresRepository) Update(ctx context.Context, accountID string, upd *Update) (*Student, error) {
	set := make([]string, 0, 10)
	args := make([]any, 0, 11)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.University != nil {
		add("university", *upd.University)
	}
	if upd.MajorCode != nil {
		add("major_code", *upd.MajorCode)
	}
	if upd.Course != nil {
		add("course", *upd.Course)
	}
	if upd.Skills != nil {
		skills, err := json.Marshal(*upd.Skills)
		if err != nil {
			return nil, fmt.Errorf("error encoding skills: %w", err)
		}
		add("skills", skills)
	}
	if upd.ResumeURL != nil {
		add("resume_url", *upd.ResumeURL)
	}
	if upd.Telegram != nil {
		add("telegram", *upd.Telegram)
	}
	if upd.About != nil {
		add("about", *upd.About)
	}
	if upd.ProfileCompletion != nil {
		add("profile_completion", *upd.ProfileCompletion)
	}

	set = append(set, "updated_at = now()")
	args = append(args, accountID)

	query := fmt.Sprintf(
		`UPDATE students SET %s WHERE account_id = $%d RETURNING `+selectColumns,
		strings.Join(set, ", "), len(args))

	return scanStudent(r.db.QueryRowContext(ctx, query, args...))
}
