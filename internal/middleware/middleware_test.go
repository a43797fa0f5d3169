package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SeaWatch/SW-Backend/internal/utils"
	"golang.org/x/time/rate"
)

type mockSessionFetcher struct {
	session utils.SessionData
	err     error
}

func (m *mockSessionFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	if m.err != nil {
		return utils.SessionData{}, m.err
	}
	return m.session, nil
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	fetcher := &mockSessionFetcher{}
	handler := SessionMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached without a session cookie")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestSessionMiddlewareFetcherError(t *testing.T) {
	fetcher := &mockSessionFetcher{err: errors.New("session not found")}
	handler := SessionMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with an unknown session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "bogus"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestSessionMiddlewareExpiredSession(t *testing.T) {
	fetcher := &mockSessionFetcher{
		session: utils.SessionData{
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-time.Minute),
		},
	}
	handler := SessionMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with an expired session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "expired"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestSessionMiddlewareValidSession(t *testing.T) {
	fetcher := &mockSessionFetcher{
		session: utils.SessionData{
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}

	var gotUserID string
	handler := SessionMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			t.Error("user ID missing from request context")
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("userID = %q, want user-1", gotUserID)
	}
}

// roleChain builds the production middleware order: session first, then
// the role gate.
func roleChain(fetcher SessionFetcher, next http.Handler, roles ...string) http.Handler {
	return SessionMiddleware(fetcher)(RoleMiddleware(fetcher, roles...)(next))
}

func TestRoleMiddlewareAllowsListedRole(t *testing.T) {
	fetcher := &mockSessionFetcher{
		session: utils.SessionData{
			UserID:    "user-1",
			Role:      "technician",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	handler := roleChain(fetcher, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), "admin", "technician")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a listed role", rr.Code)
	}
}

func TestRoleMiddlewareForbidsUnlistedRole(t *testing.T) {
	fetcher := &mockSessionFetcher{
		session: utils.SessionData{
			UserID:    "user-1",
			Role:      "fisherman",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	handler := roleChain(fetcher, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with an unlisted role")
	}), "admin", "technician")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for an unlisted role", rr.Code)
	}
}

func TestAdminMiddlewareForbidsNonAdmin(t *testing.T) {
	fetcher := &mockSessionFetcher{
		session: utils.SessionData{
			UserID:    "user-1",
			Role:      "fisherman",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	handler := SessionMiddleware(fetcher)(AdminMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached by a non-admin")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}

func TestAdminMiddlewareMissingUserID(t *testing.T) {
	fetcher := &mockSessionFetcher{}
	handler := AdminMiddleware(fetcher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached without a user ID in context")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestCORSMiddlewareUnknownOrigin(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin must not be echoed, got %q", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should be answered by the middleware")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allowed origin not echoed, got %q", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(rate.Limit(1), 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	fire := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:51000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := fire(); code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", code)
	}
	if code := fire(); code != http.StatusOK {
		t.Fatalf("second request: status = %d, want 200", code)
	}
	if code := fire(); code != http.StatusTooManyRequests {
		t.Fatalf("burst exhausted: status = %d, want 429", code)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:51000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("independent client: status = %d, want 200", rr.Code)
	}
}
