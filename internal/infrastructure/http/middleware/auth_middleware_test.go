package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-notes/pkg/jwt"
)

func newAuthTest(t *testing.T, manager *jwt.Manager) (*echo.Echo, echo.HandlerFunc) {
	t.Helper()
	e := echo.New()
	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	return e, EchoAuth(manager)(next)
}

func TestEchoAuth_ValidBearerToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.Generate("user-1", "Alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	e, handler := newAuthTest(t, manager)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := c.Get(SubjectContextKey); got != "user-1" {
		t.Fatalf("subject not set, got %v", got)
	}
	if got := c.Get(NameContextKey); got != "Alice" {
		t.Fatalf("name not set, got %v", got)
	}
}

func TestEchoAuth_CookieFallback(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.Generate("user-2", "Bob")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	e, handler := newAuthTest(t, manager)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestEchoAuth_MissingToken(t *testing.T) {
	e, handler := newAuthTest(t, jwt.NewManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEchoAuth_ExpiredToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", -time.Minute)
	token, err := manager.Generate("user-1", "Alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	e, handler := newAuthTest(t, jwt.NewManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEchoAuth_WrongSecret(t *testing.T) {
	token, err := jwt.NewManager("other-secret", time.Hour).Generate("user-1", "Alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	e, handler := newAuthTest(t, jwt.NewManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
