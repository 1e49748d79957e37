package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blandselv-backend/internal/config"
	"blandselv-backend/internal/dawa"
	"blandselv-backend/internal/domain"
	"blandselv-backend/internal/postnord"
	"github.com/gin-gonic/gin"
)

const testCronSecret = "cron-secret"

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		FrontendOrigin:   "http://localhost:3000",
		CronSecret:       testCronSecret,
		SessionRetention: 8 * 24 * time.Hour,
		CookieSecure:     true,
	}
	router, err := buildRouter(cfg, log.New(io.Discard, "", 0), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

type stubBasket struct {
	session    *domain.Session
	err        error
	savedID    string
	saved      domain.CustomerDetails
	revokedID  string
	allowCalls int
}

func (s *stubBasket) GetOrCreate(_ context.Context, consentID string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.session != nil {
		return s.session, nil
	}
	return &domain.Session{ConsentID: consentID}, nil
}

func (s *stubBasket) UpdateBasket(_ context.Context, _ string, items []domain.BasketItem) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess := *s.session
	sess.BasketItems = items
	return &sess, nil
}

func (s *stubBasket) SaveCustomerDetails(_ context.Context, consentID string, details domain.CustomerDetails) error {
	s.savedID = consentID
	s.saved = details
	return s.err
}

func (s *stubBasket) SetAllowCookies(_ context.Context, _ string, _ bool) error {
	s.allowCalls++
	return s.err
}

func (s *stubBasket) RevokeConsent(_ context.Context, consentID string) error {
	s.revokedID = consentID
	return s.err
}

type stubPricing struct {
	price int64
	err   error
}

func (s *stubPricing) PackagePrice(_ context.Context, _ string, _ int, _ map[string]int) (int64, error) {
	return s.price, s.err
}

type stubCheckout struct {
	url         string
	startErr    error
	callbackErr error
	order       *domain.Order
	statusErr   error

	lastChecksum string
	lastBody     []byte
}

func (s *stubCheckout) StartPayment(_ context.Context, _ string, _ int64, _ string) (string, error) {
	return s.url, s.startErr
}

func (s *stubCheckout) HandleCallback(_ context.Context, body []byte, checksum string) error {
	s.lastBody = body
	s.lastChecksum = checksum
	return s.callbackErr
}

func (s *stubCheckout) Status(_ context.Context, _ string) (*domain.Order, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return s.order, nil
}

type stubAddress struct {
	result *dawa.Result
	err    error
	calls  int
}

func (s *stubAddress) Wash(_ context.Context, _, _, _ string) (*dawa.Result, error) {
	s.calls++
	return s.result, s.err
}

type stubPickup struct {
	raw json.RawMessage
	err error
}

func (s *stubPickup) FindServicePoints(_ context.Context, _ postnord.Query) (json.RawMessage, error) {
	return s.raw, s.err
}

type stubCatalog struct {
	drinks   []domain.Drink
	packages []domain.MixPackage
	err      error
}

func (s *stubCatalog) GetDrink(_ context.Context, slug string) (*domain.Drink, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, d := range s.drinks {
		if d.Slug == slug {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) ListDrinks(_ context.Context) ([]domain.Drink, error) {
	return s.drinks, s.err
}

func (s *stubCatalog) GetPackage(_ context.Context, slug string) (*domain.MixPackage, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.packages {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) ListPackages(_ context.Context) ([]domain.MixPackage, error) {
	return s.packages, s.err
}

type stubAuth struct {
	token    string
	loginErr error
	email    string
	verified error
}

func (s *stubAuth) Login(_, _ string) (string, error) {
	return s.token, s.loginErr
}

func (s *stubAuth) Verify(_ string) (string, error) {
	if s.verified != nil {
		return "", s.verified
	}
	return s.email, nil
}

func (s *stubAuth) TTL() time.Duration {
	return time.Hour
}

type stubCleaner struct {
	deleted int64
	err     error
	cutoff  time.Time
	calls   int
}

func (s *stubCleaner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.calls++
	s.cutoff = cutoff
	return s.deleted, s.err
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
