// Package api is the HTTP adapter between the client and the stujob server.
// It maps the server's tagged error kinds onto the shared sentinel errors
// exactly once, at this boundary; nothing above it inspects error text.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stujob/stujob/internal/common"
)

// sessionTokenKey is the local store key the access token survives under
// between CLI runs.
const sessionTokenKey = "stujob_session_token"

// TokenStore persists the session token between runs. The localstore
// Storage satisfies it.
type TokenStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore

	mu    sync.Mutex
	token string
}

// NewClient builds an API client for the server at baseURL. A previously
// persisted session token, if any, is loaded from tokens.
func NewClient(ctx context.Context, baseURL string, tokens TokenStore) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}

	if tokens != nil {
		saved, err := tokens.Get(ctx, sessionTokenKey)
		if err != nil {
			return nil, fmt.Errorf("loading session token: %w", err)
		}
		c.token = string(saved)
	}

	return c, nil
}

// SetHTTPClient replaces the underlying HTTP client. Tests use it to route
// requests through an in-process handler instead of the network.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.httpc = h
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.tokens == nil {
		return
	}
	if token == "" {
		_ = c.tokens.Remove(ctx, sessionTokenKey)
		return
	}
	_ = c.tokens.Set(ctx, sessionTokenKey, []byte(token))
}

// do performs a JSON request against the server. A non-2xx response is
// decoded as an error body and mapped to a sentinel; transport failures map
// to ErrorUnavailable. When out is non-nil the response body is decoded
// into it.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	_, err := c.doWithStatus(ctx, method, path, in, out)
	return err
}

// doWithStatus is do for callers that also need the response status code
// (e.g. to distinguish created from already-present).
func (c *Client) doWithStatus(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, mapErrorResponse(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func mapErrorResponse(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Kind == "" {
		return fmt.Errorf("%w: unexpected response status %d", common.ErrorInternal, resp.StatusCode)
	}
	return common.ErrorByKind(body.Kind)
}
