package vacancies

import (
	"context"
	"slices"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns published vacancies matching the filter. Targeting is
// inclusive: a vacancy with no university or major targets matches everyone.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Vacancy, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if filter.University == "" && filter.MajorCode == "" {
		return all, nil
	}

	matched := make([]*Vacancy, 0, len(all))
	for _, v := range all {
		if matches(v, filter) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vacancy, error) {
	return s.repo.Get(ctx, id)
}

func matches(v *Vacancy, filter Filter) bool {
	if filter.University != "" && len(v.UniversityTarget) > 0 &&
		!slices.Contains(v.UniversityTarget, filter.University) {
		return false
	}
	if filter.MajorCode != "" && len(v.MajorTarget) > 0 &&
		!containsMajor(v.MajorTarget, filter.MajorCode) {
		return false
	}
	return true
}

// containsMajor matches by code prefix: targets are stored as
// "09.03.02 - Информационные системы" while profiles carry bare codes.
func containsMajor(targets []string, code string) bool {
	for _, t := range targets {
		if t == code || (len(t) >= len(code) && t[:len(code)] == code) {
			return true
		}
	}
	return false
}
