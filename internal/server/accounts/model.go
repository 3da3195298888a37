package accounts

import "time"

// Account is a credential identity issued by the platform. The ID is
// server-generated, globally unique and immutable; profiles reference it.
type Account struct {
	ID             string
	Email          string
	PasswordHash   string
	Name           string
	University     string
	EmailConfirmed bool
	CreatedAt      time.Time
}
