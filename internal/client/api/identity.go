package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/stujob/stujob/internal/client/models"
	"github.com/stujob/stujob/internal/common"
)

type signUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	University string `json:"university"`
}

// SignUp creates a new credential account. The email starts unconfirmed,
// but the server issues a session token right away so the fresh account can
// write its own profile row; the token is retained like a sign-in token.
func (c *Client) SignUp(ctx context.Context, email, password, name, university string) (*models.Account, error) {
	var resp signInResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", signUpRequest{
		Email: email, Password: password, Name: name, University: university,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.setToken(ctx, resp.Token)
	}
	return &resp.Account, nil
}

type accountResponse struct {
	Account models.Account `json:"account"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token   string         `json:"token"`
	Account models.Account `json:"account"`
}

// SignIn exchanges credentials for a session. On success the access token is
// retained for subsequent calls and persisted to the token store.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	var resp signInResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signin", signInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.setToken(ctx, resp.Token)
	return &resp.Account, nil
}

// GetSession returns the account of the current session, or (nil, nil) when
// no session exists. A stale or revoked token is discarded and reported as
// no session.
func (c *Client) GetSession(ctx context.Context) (*models.Account, error) {
	if c.currentToken() == "" {
		return nil, nil
	}

	var resp accountResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &resp)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.setToken(ctx, "")
			return nil, nil
		}
		return nil, err
	}
	return &resp.Account, nil
}

// SignOut terminates the session server-side (best effort) and always
// discards the local token. Idempotent.
func (c *Client) SignOut(ctx context.Context) error {
	if c.currentToken() == "" {
		return nil
	}

	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.setToken(ctx, "")
	if err != nil && !errors.Is(err, common.ErrorUnauthorized) {
		return err
	}
	return nil
}

// ConfirmEmail marks an account's email as confirmed. Stand-in for the
// original's confirmation-link callback, mostly useful in development.
func (c *Client) ConfirmEmail(ctx context.Context, accountID string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/confirm", map[string]string{"account_id": accountID}, nil)
}
