package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{URL: srv.URL + "/", AnonKey: "anon", Timeout: 5 * time.Second}, log)
}

func TestClient_SignIn(t *testing.T) {
	var body map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1740830400,"expires_in":3600,"user":{"id":"u1","email":"a@b.c"}}`))
	})

	tokens, err := c.SignIn(context.Background(), "a@b.c", "hash")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"email": "a@b.c", "password": "hash"}, body)
	assert.Equal(t, "at", tokens.AccessToken)
	assert.Equal(t, "rt", tokens.RefreshToken)
	assert.Equal(t, "u1", tokens.UserID)
	assert.Equal(t, time.Unix(1740830400, 0).UTC(), tokens.ExpiresAt)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestClient_AuthErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"error_description", `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "Invalid login credentials"},
		{"msg", `{"msg":"Email not confirmed"}`, "Email not confirmed"},
		{"message", `{"message":"bad"}`, "bad"},
		{"empty body", ``, "status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Refresh(context.Background(), "rt")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrAuth)
			assert.Equal(t, tt.wantMsg, apperr.Message(err))
		})
	}
}

func TestClient_UpsertItem(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/vault_items", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	err := c.UpsertItem(context.Background(), "token", record.ItemDTO{
		ID: "i1", UserID: "u1", EncryptedData: "x", Type: "note", CreatedAt: &created,
	})
	require.NoError(t, err)

	assert.Equal(t, "i1", got["id"])
	assert.Contains(t, got, "folder_id")
	assert.Nil(t, got["folder_id"])
	assert.NotContains(t, got, "updated_at")
}

func TestClient_RestErrorIsSync(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate key"}`))
	})

	err := c.UpsertFolder(context.Background(), "token", record.FolderDTO{ID: "f"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrSync)
	assert.Equal(t, "duplicate key", apperr.Message(err))
}

func TestClient_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/v1/folders", r.URL.Path)
		assert.Equal(t, "eq.f1", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "token", record.KindFolder, "f1"))

	err := c.Delete(context.Background(), "token", record.EntityKind("users"), "f1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestClient_ListItems(t *testing.T) {
	since := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		since     *time.Time
		wantSince string
	}{
		{"full", nil, ""},
		{"incremental", &since, "gt.2025-03-01T12:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rest/v1/vault_items", r.URL.Path)
				assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
				assert.Equal(t, tt.wantSince, r.URL.Query().Get("updated_at"))
				_, _ = w.Write([]byte(`[{"id":"i1","user_id":"u1","encrypted_data":"x","type":"login","folder_id":null,"deleted_at":null,"updated_at":"2025-03-02T00:00:00Z"}]`))
			})

			items, err := c.ListItems(context.Background(), "token", "u1", tt.since)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "i1", items[0].ID)
			require.NotNil(t, items[0].UpdatedAt)
		})
	}
}

func TestClient_ListFoldersBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := c.ListFolders(context.Background(), "token", "u1", nil)
	assert.ErrorIs(t, err, apperr.ErrSerialization)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(Config{URL: srv.URL, AnonKey: "anon"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := c.ListItems(context.Background(), "token", "u1", nil)
	assert.ErrorIs(t, err, apperr.ErrNetwork)

	online, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.False(t, online)
}

func TestClient_Ping(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusUnauthorized, true},
		{http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				assert.Equal(t, "/rest/v1/", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			online, err := c.Ping(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, online)
		})
	}
}
