package vacancies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stujob/stujob/internal/common"
)

type fakeRepo struct {
	vacancies []*Vacancy
}

func (f *fakeRepo) List(ctx context.Context) ([]*Vacancy, error) {
	return f.vacancies, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*Vacancy, error) {
	for _, v := range f.vacancies {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, common.ErrorNotFound
}

func testVacancies() []*Vacancy {
	return []*Vacancy{
		{
			ID: "1", Title: "Frontend-разработчик (React)", Company: "Яндекс",
			UniversityTarget: []string{"МАДИ", "МГТУ"},
			MajorTarget:      []string{"09.03.02 - Информационные системы"},
		},
		{
			ID: "2", Title: "Data Science стажёр", Company: "Сбер",
			UniversityTarget: []string{"МГУ"},
			MajorTarget:      []string{"01.03.02 - Прикладная математика"},
		},
		{
			ID: "3", Title: "Курьер", Company: "Самокат",
			// no targeting: open to everyone
		},
	}
}

func TestListNoFilter(t *testing.T) {
	s := NewService(&fakeRepo{vacancies: testVacancies()})

	got, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestListUniversityFilter(t *testing.T) {
	s := NewService(&fakeRepo{vacancies: testVacancies()})

	got, err := s.List(context.Background(), Filter{University: "МАДИ"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID, "untargeted vacancy matches everyone")
}

func TestListMajorFilterByCodePrefix(t *testing.T) {
	s := NewService(&fakeRepo{vacancies: testVacancies()})

	got, err := s.List(context.Background(), Filter{MajorCode: "09.03.02"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
}

func TestGet(t *testing.T) {
	s := NewService(&fakeRepo{vacancies: testVacancies()})

	v, err := s.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Сбер", v.Company)

	_, err = s.Get(context.Background(), "404")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
