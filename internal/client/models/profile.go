// Package models defines client-side data models used by the stujob CLI.
package models

import "time"

// Profile is the merged user view the session manager resolves and caches
// locally. Before migration ID holds a client-generated identifier; after a
// successful migration it holds the server-issued account identifier.
//
// The JSON shape matches the browser-era local storage records, so snapshots
// written by the original web client remain readable.
type Profile struct {
	// ID is the profile identifier: local until migration, account ID after.
	ID string `json:"id"`

	Name       string   `json:"name"`
	Email      string   `json:"email"`
	University string   `json:"university"`
	MajorCode  string   `json:"major"`
	Course     int      `json:"course"`
	Skills     []string `json:"skills"`
	Telegram   string   `json:"telegram,omitempty"`
	About      string   `json:"about,omitempty"`
	ResumeURL  string   `json:"resumeUrl,omitempty"`

	// ProfileCompletion is the server-side completeness score (0-100).
	ProfileCompletion int `json:"profileCompletion"`

	// IsRegistered reports whether the profile is backed by a remote account.
	IsRegistered bool `json:"isRegistered"`
}

// RemoteProfile mirrors the server's student row wire shape.
type RemoteProfile struct {
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

// ProfileUpdate is a partial remote profile change. The account identifier
// and creation timestamp are immutable and have no fields here, so a patch
// cannot express them.
type ProfileUpdate struct {
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

// Account is the credential identity as reported by the identity service.
type Account struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	University     string `json:"university"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// Vacancy is a job listing as returned by the server.
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

// FromRemote converts a server student row into the local merged view.
func FromRemote(r *RemoteProfile) *Profile {
	return &Profile{
		ID:                r.AccountID,
		Name:              r.Name,
		Email:             r.Email,
		University:        r.University,
		MajorCode:         r.MajorCode,
		Course:            r.Course,
		Skills:            r.Skills,
		Telegram:          r.Telegram,
		About:             r.About,
		ResumeURL:         r.ResumeURL,
		ProfileCompletion: r.ProfileCompletion,
		IsRegistered:      true,
	}
}

// ToRemote converts a merged profile into a student row seed for inserts.
func ToRemote(p *Profile, accountID string) *RemoteProfile {
	return &RemoteProfile{
		AccountID:         accountID,
		Name:              p.Name,
		Email:             p.Email,
		University:        p.University,
		MajorCode:         p.MajorCode,
		Course:            p.Course,
		Skills:            p.Skills,
		ResumeURL:         p.ResumeURL,
		Telegram:          p.Telegram,
		About:             p.About,
		ProfileCompletion: p.ProfileCompletion,
	}
}
