package students

import "time"

// Student is the durable server-side profile row describing a student's
// application-specific attributes, keyed by account identifier. At most one
// Student exists per account; the database enforces uniqueness on AccountID.
type Student struct {
	AccountID         string    `json:"account_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	University        string    `json:"university"`
	MajorCode         string    `json:"major_code"`
	Course            int       `json:"course"`
	Skills            []string  `json:"skills"`
	ResumeURL         string    `json:"resume_url,omitempty"`
	Telegram          string    `json:"telegram,omitempty"`
	About             string    `json:"about,omitempty"`
	ProfileCompletion int       `json:"profile_completion"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Update is a partial profile change. Nil fields are left untouched.
// AccountID and CreatedAt are immutable and deliberately absent.
type Update struct {
	Name              *string   `json:"name,omitempty"`
	Email             *string   `json:"email,omitempty"`
	University        *string   `json:"university,omitempty"`
	MajorCode         *string   `json:"major_code,omitempty"`
	Course            *int      `json:"course,omitempty"`
	Skills            *[]string `json:"skills,omitempty"`
	ResumeURL         *string   `json:"resume_url,omitempty"`
	Telegram          *string   `json:"telegram,omitempty"`
	About             *string   `json:"about,omitempty"`
	ProfileCompletion *int      `json:"profile_completion,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u *Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.University == nil &&
		u.MajorCode == nil && u.Course == nil && u.Skills == nil &&
		u.ResumeURL == nil && u.Telegram == nil && u.About == nil &&
		u.ProfileCompletion == nil
}
