package httpserver

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blandselv-backend/internal/config"
)

func cleanupRequest(secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cleanupSessions", nil)
	if secret != "" {
		req.Header.Set(cronAuthHeader, secret)
	}
	return req
}

func TestCleanupSessions(t *testing.T) {
	cleaner := &stubCleaner{deleted: 3}
	router := newTestRouter(t, Deps{Cleaner: cleaner})

	w := httptest.NewRecorder()
	before := time.Now().UTC().Add(-8 * 24 * time.Hour)
	router.ServeHTTP(w, cleanupRequest(testCronSecret))
	after := time.Now().UTC().Add(-8 * 24 * time.Hour)

	requireStatus(t, w, http.StatusOK)
	if decodeBody(t, w)["deleted"] != float64(3) {
		t.Fatalf("expected deleted count in response, got %s", w.Body.String())
	}
	if cleaner.calls != 1 {
		t.Fatalf("expected one cleanup call, got %d", cleaner.calls)
	}
	if cleaner.cutoff.Before(before) || cleaner.cutoff.After(after) {
		t.Fatalf("cutoff %s not within retention window", cleaner.cutoff)
	}
}

func TestCleanupSessionsWrongSecret(t *testing.T) {
	cleaner := &stubCleaner{}
	router := newTestRouter(t, Deps{Cleaner: cleaner})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, cleanupRequest("forkert"))
	requireStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, cleanupRequest(""))
	requireStatus(t, w, http.StatusUnauthorized)

	if cleaner.calls != 0 {
		t.Fatalf("unauthorized request must not trigger cleanup")
	}
}

func TestCleanupSessionsFailsClosedWithoutSecret(t *testing.T) {
	cleaner := &stubCleaner{}
	cfg := config.Config{
		FrontendOrigin:   "http://localhost:3000",
		CronSecret:       "", // unset in the environment
		SessionRetention: 8 * 24 * time.Hour,
	}
	router, err := buildRouter(cfg, log.New(io.Discard, "", 0), nil, Deps{Cleaner: cleaner})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	// Even an empty header must not match an empty secret.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, cleanupRequest(""))
	requireStatus(t, w, http.StatusUnauthorized)
	if cleaner.calls != 0 {
		t.Fatalf("cleanup ran without a configured secret")
	}
}
