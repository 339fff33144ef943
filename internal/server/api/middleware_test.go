package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("burst then refill", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		now := time.Unix(1_000, 0)
		rl.now = func() time.Time { return now }

		assert.True(t, rl.allow("1.2.3.4"))
		assert.True(t, rl.allow("1.2.3.4"))
		assert.False(t, rl.allow("1.2.3.4"))
		assert.True(t, rl.allow("5.6.7.8"), "other IPs have their own bucket")

		now = now.Add(time.Second)
		assert.True(t, rl.allow("1.2.3.4"))
		assert.False(t, rl.allow("1.2.3.4"))
	})

	t.Run("idle visitors are pruned", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		now := time.Unix(1_000, 0)
		rl.now = func() time.Time { return now }
		rl.lastCleanup = now

		rl.allow("1.2.3.4")
		now = now.Add(visitorTTL + cleanupInterval)
		rl.allow("5.6.7.8")

		assert.NotContains(t, rl.visitors, "1.2.3.4")
		assert.Contains(t, rl.visitors, "5.6.7.8")
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	e := newTestServer(t, nil, nil, cfg)

	first := doRequest(t, e, http.MethodPost, "/api/folders", folderRequest{Path: "/", Name: "a"})
	second := doRequest(t, e, http.MethodPost, "/api/folders", folderRequest{Path: "/", Name: "b"})
	read := doRequest(t, e, http.MethodGet, "/api/tree", nil)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, read.Code, "reads are not rate limited")
}

func TestRequireAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AdminPasswordHash = string(hash)
	e := newTestServer(t, nil, nil, cfg)

	post := func(password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/folders?path=/&name=ghost", nil)
		if password != "" {
			req.Header.Set(AdminPasswordHeader, password)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing password", func(t *testing.T) {
		rec := post("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "password_required", decodeMap(t, rec)["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, post("guess").Code)
	})

	t.Run("correct password reaches the handler", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, post("secret").Code)
	})

	t.Run("reads stay open", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/api/tree", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin_NoHash(t *testing.T) {
	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())

	require.NoError(t, RequireAdmin("")(next)(c))
	assert.True(t, called)
}
