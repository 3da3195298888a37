package vacancies

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Vacancy, error)
	Get(ctx context.Context, id string) (*Vacancy, error)
}
