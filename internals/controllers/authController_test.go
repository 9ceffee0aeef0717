package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bu6wer8/student-services-V2/internals/auth"
	"github.com/bu6wer8/student-services-V2/internals/config"
	"github.com/bu6wer8/student-services-V2/internals/middleware"
)

type loginEnv struct {
	router *gin.Engine
	svc    *auth.Service
	clock  *testClock
}

type testClock struct{ cur time.Time }

func (c *testClock) Now() time.Time { return c.cur }

func newLoginEnv(t *testing.T) *loginEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &testClock{cur: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	stored, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.NewService(auth.Config{
		AdminUsername:     "admin",
		AdminPasswordHash: stored,
		SecretKey:         "0123456789abcdef0123456789abcdef",
		Audit:             discard,
		Log:               discard,
		Now:               clock.Now,
	})

	cookies := &config.CookieConfig{Domain: "", IsSecure: false, HttpOnly: true}
	ctrl := NewAuthController(svc, cookies)
	guard := middleware.NewRequireAuthMiddleware(svc)

	r := gin.New()
	r.GET("/admin/captcha", ctrl.GetCaptcha)
	r.GET("/admin/login", ctrl.LoginPage)
	r.POST("/admin/login", ctrl.Login)
	r.POST("/admin/logout", ctrl.Logout)

	protected := r.Group("/admin", guard.RequireAdmin)
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_user": c.GetString(middleware.PrincipalKey)})
	})
	protected.POST("/api/token", ctrl.CreateToken)

	api := r.Group("/admin/api", guard.RequireAdminAPI)
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_user": c.GetString(middleware.PrincipalKey)})
	})

	return &loginEnv{router: r, svc: svc, clock: clock}
}

// fetchCaptcha requests a challenge and returns its token and solved answer.
func (e *loginEnv) fetchCaptcha(t *testing.T) (string, int) {
	t.Helper()

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest("GET", "/admin/captcha", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Token     string `json:"token"`
		Question  string `json:"question"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, 300, payload.ExpiresIn)

	var a, b int
	var op string
	_, err := fmt.Sscanf(payload.Question, "What is %d %s %d?", &a, &op, &b)
	require.NoError(t, err)

	switch op {
	case "+":
		return payload.Token, a + b
	case "-":
		return payload.Token, a - b
	default:
		return payload.Token, a * b
	}
}

func (e *loginEnv) postLogin(t *testing.T, ip string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Real-IP", ip)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *loginEnv) login(t *testing.T, ip, password string) *httptest.ResponseRecorder {
	t.Helper()

	token, answer := e.fetchCaptcha(t)
	return e.postLogin(t, ip, url.Values{
		"username":       {"admin"},
		"password":       {password},
		"captcha_token":  {token},
		"captcha_answer": {strconv.Itoa(answer)},
	})
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginEndpointSuccess(t *testing.T) {
	env := newLoginEnv(t)

	w := env.login(t, "10.0.0.1", "correct-horse")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Login successful")
	require.Contains(t, w.Body.String(), `"redirect":"/admin"`)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, 8*60*60, cookie.MaxAge)

	// The cookie opens the protected surface.
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Contains(t, w2.Body.String(), `"admin_user":"admin"`)
}

func TestLoginEndpointBadCaptcha(t *testing.T) {
	env := newLoginEnv(t)

	token, answer := env.fetchCaptcha(t)
	w := env.postLogin(t, "10.0.0.2", url.Values{
		"username":       {"admin"},
		"password":       {"correct-horse"},
		"captcha_token":  {token},
		"captcha_answer": {strconv.Itoa(answer + 1)},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid CAPTCHA")
	require.Nil(t, sessionCookie(w))
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	env := newLoginEnv(t)

	w := env.login(t, "10.0.0.3", "wrong-password")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLoginEndpointMissingFields(t *testing.T) {
	env := newLoginEnv(t)

	w := env.postLogin(t, "10.0.0.4", url.Values{"username": {"admin"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Missing login fields")
}

func TestLoginEndpointRateLimited(t *testing.T) {
	env := newLoginEnv(t)
	ip := "10.0.0.5"

	for i := 0; i < 3; i++ {
		w := env.login(t, ip, "wrong-password")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.login(t, ip, "correct-horse")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		RateLimited bool `json:"rate_limited"`
		LockoutTime int  `json:"lockout_time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.RateLimited)
	require.GreaterOrEqual(t, body.LockoutTime, 299)

	// The login page reports the lockout for the form.
	req := httptest.NewRequest("GET", "/admin/login", nil)
	req.Header.Set("X-Real-IP", ip)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Contains(t, w2.Body.String(), `"rate_limited":true`)
}

func TestLogoutClearsSession(t *testing.T) {
	env := newLoginEnv(t)

	w := env.login(t, "10.0.0.6", "correct-horse")
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/admin/logout", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)

	require.Equal(t, http.StatusFound, w2.Code)
	require.Equal(t, "/admin/login", w2.Header().Get("Location"))

	cleared := sessionCookie(w2)
	require.NotNil(t, cleared)
	require.Less(t, cleared.MaxAge, 0)

	// The revoked session no longer opens the admin surface.
	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	w3 := httptest.NewRecorder()
	env.router.ServeHTTP(w3, req)
	require.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestBearerTokenFlow(t *testing.T) {
	env := newLoginEnv(t)

	w := env.login(t, "10.0.0.7", "correct-horse")
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/admin/api/token", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)

	// The bearer token works without a cookie.
	req = httptest.NewRequest("GET", "/admin/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	w3 := httptest.NewRecorder()
	env.router.ServeHTTP(w3, req)
	require.Equal(t, http.StatusOK, w3.Code)
	require.Contains(t, w3.Body.String(), `"admin_user":"admin"`)

	// A damaged token does not.
	req = httptest.NewRequest("GET", "/admin/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken+"x")
	w4 := httptest.NewRecorder()
	env.router.ServeHTTP(w4, req)
	require.Equal(t, http.StatusUnauthorized, w4.Code)
}

func TestProtectedRouteWithoutSession(t *testing.T) {
	env := newLoginEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not authenticated")
}
