package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stujob/stujob/internal/client/models"
)

// Find returns the profile row of the current session's account. The server
// derives the account from the session token; accountID is accepted for
// interface symmetry and is not sent.
func (c *Client) Find(ctx context.Context, accountID string) (*models.RemoteProfile, error) {
	var profile models.RemoteProfile
	if err := c.do(ctx, http.MethodGet, "/api/students/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail looks a profile row up by email.
func (c *Client) FindByEmail(ctx context.Context, email string) (*models.RemoteProfile, error) {
	var profile models.RemoteProfile
	path := "/api/students?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// InsertIfAbsent creates the profile row for the current account unless one
// already exists, in which case the existing row is returned. The bool
// reports whether this call created the row.
func (c *Client) InsertIfAbsent(ctx context.Context, seed *models.RemoteProfile) (*models.RemoteProfile, bool, error) {
	var profile models.RemoteProfile
	status, err := c.doWithStatus(ctx, http.MethodPost, "/api/students/", seed, &profile)
	if err != nil {
		return nil, false, err
	}
	return &profile, status == http.StatusCreated, nil
}

// Update applies a partial change to the current account's profile row and
// returns the updated row.
func (c *Client) Update(ctx context.Context, accountID string, patch *models.ProfileUpdate) (*models.RemoteProfile, error) {
	var profile models.RemoteProfile
	if err := c.do(ctx, http.MethodPatch, "/api/students/me", patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
