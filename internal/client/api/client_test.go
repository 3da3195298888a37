package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stujob/stujob/internal/client/models"
	"github.com/stujob/stujob/internal/common"
)

type memTokenStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{data: make(map[string][]byte)}
}

func (m *memTokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memTokenStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memTokenStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func writeError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope", "kind": kind})
}

func TestSignIn_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signin", r.URL.Path)

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@madi.ru", req.Email)

		_ = json.NewEncoder(w).Encode(signInResponse{
			Token:   "tok-123",
			Account: models.Account{ID: "acc-1", Email: req.Email, EmailConfirmed: true},
		})
	}))
	defer srv.Close()

	tokens := newMemTokenStore()
	c, err := NewClient(context.Background(), srv.URL, tokens)
	require.NoError(t, err)

	account, err := c.SignIn(context.Background(), "a@madi.ru", "123456")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "tok-123", c.currentToken())

	saved, err := tokens.Get(context.Background(), sessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-123"), saved)
}

func TestSignIn_MapsErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		want   error
	}{
		{"unconfirmed email", http.StatusForbidden, common.KindEmailNotConfirmed, common.ErrorEmailNotConfirmed},
		{"wrong password", http.StatusUnauthorized, common.KindUnauthorized, common.ErrorUnauthorized},
		{"rate limited", http.StatusTooManyRequests, common.KindRateLimited, common.ErrorRateLimited},
		{"unknown kind", http.StatusTeapot, "mystery", common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tt.status, tt.kind)
			}))
			defer srv.Close()

			c, err := NewClient(context.Background(), srv.URL, nil)
			require.NoError(t, err)

			_, err = c.SignIn(context.Background(), "a@madi.ru", "123456")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetSession_NoTokenMeansNoSession(t *testing.T) {
	c, err := NewClient(context.Background(), "http://127.0.0.1:1", nil)
	require.NoError(t, err)

	account, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestGetSession_StaleTokenIsDiscarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, common.KindUnauthorized)
	}))
	defer srv.Close()

	tokens := newMemTokenStore()
	require.NoError(t, tokens.Set(context.Background(), sessionTokenKey, []byte("stale")))

	c, err := NewClient(context.Background(), srv.URL, tokens)
	require.NoError(t, err)

	account, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, account)
	assert.Empty(t, c.currentToken())

	saved, err := tokens.Get(context.Background(), sessionTokenKey)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestGetSession_LoadsPersistedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-prev", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(accountResponse{
			Account: models.Account{ID: "acc-1", Email: "a@madi.ru"},
		})
	}))
	defer srv.Close()

	tokens := newMemTokenStore()
	require.NoError(t, tokens.Set(context.Background(), sessionTokenKey, []byte("tok-prev")))

	c, err := NewClient(context.Background(), srv.URL, tokens)
	require.NoError(t, err)

	account, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "acc-1", account.ID)
}

func TestInsertIfAbsent_ReportsCreated(t *testing.T) {
	created := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/students/", r.URL.Path)

		var seed models.RemoteProfile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seed))

		if created {
			w.WriteHeader(http.StatusCreated)
		}
		_ = json.NewEncoder(w).Encode(&seed)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	seed := &models.RemoteProfile{AccountID: "acc-1", Name: "Иван"}

	_, wasCreated, err := c.InsertIfAbsent(context.Background(), seed)
	require.NoError(t, err)
	assert.True(t, wasCreated)

	created = false
	_, wasCreated, err = c.InsertIfAbsent(context.Background(), seed)
	require.NoError(t, err)
	assert.False(t, wasCreated)
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	// Closed server: the port refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := NewClient(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	_, err = c.SignIn(context.Background(), "a@madi.ru", "123456")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestConfirmEmail_PostsAccountID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/confirm", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acc-1", body["account_id"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	require.NoError(t, c.ConfirmEmail(context.Background(), "acc-1"))
}

func TestSignOut_Idempotent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tokens := newMemTokenStore()
	require.NoError(t, tokens.Set(context.Background(), sessionTokenKey, []byte("tok")))

	c, err := NewClient(context.Background(), srv.URL, tokens)
	require.NoError(t, err)

	require.NoError(t, c.SignOut(context.Background()))
	require.NoError(t, c.SignOut(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Empty(t, c.currentToken())
}
