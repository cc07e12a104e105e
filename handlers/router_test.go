package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rosterpad/rosterpad/internal/auth"
	"github.com/rosterpad/rosterpad/internal/config"
	"github.com/rosterpad/rosterpad/internal/members"
	"github.com/rosterpad/rosterpad/internal/notes"
	"github.com/rosterpad/rosterpad/internal/sessions"
	"github.com/rosterpad/rosterpad/internal/store"
	"github.com/rosterpad/rosterpad/internal/tokens"
	"github.com/rosterpad/rosterpad/pkg/middleware"
)

// newTestRouter wires the full HTTP surface against a file store in a temp
// dir, mirroring the production wiring in main.
func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenTTL = time.Hour
	cfg.JWT.RefreshTokenTTL = 24 * time.Hour

	st := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	memberSvc := members.NewService(st)
	noteSvc := notes.NewService(st)
	sessSvc := sessions.NewService(sessions.NewMemoryRepository())
	authSvc := auth.NewService(cfg, st, sessSvc)

	r := gin.New()
	requireSession := middleware.RequireSession(tokens.NewVerifier(cfg))
	RegisterMemberRoutes(r, memberSvc, requireSession)
	RegisterNoteRoutes(r, noteSvc)
	NewAuthHandler(cfg, authSvc).Register(&r.RouterGroup)
	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// loginAs registers an admin account and logs in, returning the access token.
func loginAs(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	creds := gin.H{"username": username, "password": "secret1"}

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
