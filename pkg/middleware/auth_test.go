package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rosterpad/rosterpad/internal/sessions"
)

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (map[string]interface{}, error) {
	if raw == "goodtoken" {
		return map[string]interface{}{"sub": "user1", "username": "admin"}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func TestRequireSession_NoHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireSession(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireSession_InvalidHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireSession(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireSession_PresenceOnly(t *testing.T) {
	// nil verifier: any non-empty bearer credential passes the gate
	g := gin.New()
	g.GET("/", RequireSession(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}

func TestRequireSession_VerifierSetsClaims(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireSession(&fakeVerifier{}), func(c *gin.Context) {
		claims, ok := c.Get("claims")
		require.True(t, ok)
		resp, _ := json.Marshal(gin.H{"claims": claims})
		c.Writer.Write(resp)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Contains(t, got, "claims")
}

func TestRequireSession_RejectsInvalidToken(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireSession(&fakeVerifier{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer badtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireSession_FailsClosedWhenRevocationCheckErrors(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	sessions.SetBlacklistClient(client)
	defer sessions.SetBlacklistClient(nil)
	m.Close()

	g := gin.New()
	g.GET("/", RequireSession(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusServiceUnavailable, rw.Code)
}

func TestRequireSession_RejectsBlacklistedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	sessions.SetBlacklistClient(client)
	defer sessions.SetBlacklistClient(nil)

	token := "black-token"
	require.NoError(t, sessions.BlacklistAccessToken(context.Background(), token, 5*time.Second))

	g := gin.New()
	g.GET("/", RequireSession(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
