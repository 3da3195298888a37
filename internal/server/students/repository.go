package students

import "context"

type Repository interface {
	GetByAccountID(ctx context.Context, accountID string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	Insert(ctx context.Context, student *Student) (*Student, error)
	Update(ctx context.Context, accountID string, upd *Update) (*Student, error)
}
