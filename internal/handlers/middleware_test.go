package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/security"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(nil, security.NewCSRFGenerator("test-secret"), security.NewRateLimiter(2, time.Minute))
}

func TestCSRFProtectRejectsMissingToken(t *testing.T) {
	m := newTestMiddleware()

	called := false
	handler := m.CSRFProtect(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("POST", "/yohoe/create", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
	recorder := httptest.NewRecorder()

	handler(recorder, req)

	if called {
		t.Fatal("handler should not run without a csrf token")
	}
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", recorder.Code)
	}
}

func TestCSRFProtectAcceptsValidToken(t *testing.T) {
	m := newTestMiddleware()

	token, err := m.csrf.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	called := false
	handler := m.CSRFProtect(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	form := url.Values{"csrf_token": []string{token}}
	req := httptest.NewRequest("POST", "/yohoe/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
	recorder := httptest.NewRecorder()

	handler(recorder, req)

	if !called {
		t.Fatalf("handler should run with a valid token, got status %d", recorder.Code)
	}
}

func TestCSRFProtectRejectsTokenForOtherSession(t *testing.T) {
	m := newTestMiddleware()

	token, err := m.csrf.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := m.CSRFProtect(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a token from another session")
	})

	form := url.Values{"csrf_token": []string{token}}
	req := httptest.NewRequest("POST", "/yohoe/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-2"})
	recorder := httptest.NewRecorder()

	handler(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", recorder.Code)
	}
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	m := newTestMiddleware()

	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i+1, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler(recorder, req)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after limit, got %d", recorder.Code)
	}
}
