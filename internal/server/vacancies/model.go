package vacancies

import "time"

// Vacancy is a published job listing targeted at students of specific
// universities and majors.
type Vacancy struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Salary           string    `json:"salary"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Format           string    `json:"format"`
	Location         string    `json:"location"`
	UniversityTarget []string  `json:"university_target"`
	MajorTarget      []string  `json:"major_target"`
	PublishedAt      time.Time `json:"published_at"`
}

// Filter narrows a listing query. Empty fields match everything.
type Filter struct {
	University string
	MajorCode  string
}
