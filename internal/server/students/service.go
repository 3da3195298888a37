package students

import (
	"context"
	"errors"
	"fmt"

	"github.com/stujob/stujob/internal/catalog"
	"github.com/stujob/stujob/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByAccountID(ctx context.Context, accountID string) (*Student, error) {
	return s.repo.GetByAccountID(ctx, accountID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Student, error) {
	return s.repo.GetByEmail(ctx, email)
}

// InsertIfAbsent ensures exactly one profile row exists for the student's
// account. It queries first and inserts only when absent; a concurrent insert
// losing the race against the unique constraint is resolved by re-reading the
// winner's row. The returned bool reports whether this call created the row.
func (s *Service) InsertIfAbsent(ctx context.Context, student *Student) (*Student, bool, error) {
	if err := s.validate(student); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByAccountID(ctx, student.AccountID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, err
	}

	created, err := s.repo.Insert(ctx, student)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, common.ErrorAlreadyExists) {
		return nil, false, err
	}

	// Lost a check-then-insert race; the row is there now.
	existing, err = s.repo.GetByAccountID(ctx, student.AccountID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Update applies a partial change to the profile of accountID. Immutable
// fields are not part of Update by construction; validation guards the rest.
func (s *Service) Update(ctx context.Context, accountID string, upd *Update) (*Student, error) {
	if upd.IsEmpty() {
		return s.repo.GetByAccountID(ctx, accountID)
	}
	if upd.Course != nil && !catalog.ValidCourse(*upd.Course) {
		return nil, fmt.Errorf("course out of range: %d", *upd.Course)
	}
	if upd.MajorCode != nil {
		if _, ok := catalog.MajorByCode(*upd.MajorCode); !ok {
			return nil, fmt.Errorf("unknown major code: %s", *upd.MajorCode)
		}
	}

	return s.repo.Update(ctx, accountID, upd)
}

func (s *Service) validate(student *Student) error {
	if student.AccountID == "" {
		return fmt.Errorf("missing account id")
	}
	if !catalog.ValidCourse(student.Course) {
		return fmt.Errorf("course out of range: %d", student.Course)
	}
	if _, ok := catalog.MajorByCode(student.MajorCode); !ok {
		return fmt.Errorf("unknown major code: %s", student.MajorCode)
	}
	return nil
}
