package vacancies

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/dbx"
)

const selectColumns = `id, title, company, salary, description, requirements,
	format, location, university_target, major_target, published_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func scanVacancy(scan func(dest ...any) error) (*Vacancy, error) {
	v := &Vacancy{}
	var requirements, universities, majors []byte
	err := scan(&v.ID, &v.Title, &v.Company, &v.Salary, &v.Description,
		&requirements, &v.Format, &v.Location, &universities, &majors, &v.PublishedAt)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw []byte
		out *[]string
	}{
		{requirements, &v.Requirements},
		{universities, &v.UniversityTarget},
		{majors, &v.MajorTarget},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.out); err != nil {
			return nil, fmt.Errorf("error decoding vacancy list field: %w", err)
		}
	}

	return v, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Vacancy, error) {
	query := `SELECT ` + selectColumns + ` FROM vacancies ORDER BY published_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning vacancy row: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacancy rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Vacancy, error) {
	query := `SELECT ` + selectColumns + ` FROM vacancies WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	v, err := scanVacancy(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return v, nil
}
