package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"blandselv-backend/internal/domain"
)

func TestGetBasketReturnsEmptyItemsArray(t *testing.T) {
	basket := &stubBasket{session: &domain.Session{ConsentID: "c1"}}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodGet, "/getBasket?consentId=c1", "")
	requireStatus(t, w, http.StatusOK)

	resp := decodeBody(t, w)
	if resp["consentId"] != "c1" {
		t.Fatalf("unexpected consentId %v", resp["consentId"])
	}
	items, ok := resp["basketItems"].([]interface{})
	if !ok {
		t.Fatalf("basketItems must be an array, got %v", resp["basketItems"])
	}
	if len(items) != 0 {
		t.Fatalf("expected empty basket, got %v", items)
	}
}

func TestUpdateBasket(t *testing.T) {
	basket := &stubBasket{session: &domain.Session{ConsentID: "c1"}}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodPost, "/updateBasket", `{
		"consentId": "c1",
		"basketItems": [{"slug": "bland-selv-sodavand", "quantity": 1, "packages_size": 24}]
	}`)
	requireStatus(t, w, http.StatusOK)

	resp := decodeBody(t, w)
	items := resp["basketItems"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %v", items)
	}
}

func TestUpdateBasketValidation(t *testing.T) {
	router := newTestRouter(t, Deps{Basket: &stubBasket{}})

	// consentId missing.
	w := doJSON(t, router, http.MethodPost, "/updateBasket", `{"basketItems": []}`)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateBasketRejectsBadQuantity(t *testing.T) {
	basket := &stubBasket{err: fmt.Errorf("item x: %w", domain.ErrInvalidQuantity)}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodPost, "/updateBasket", `{
		"consentId": "c1",
		"basketItems": [{"slug": "x", "quantity": 0}]
	}`)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateBasketBackendFailure(t *testing.T) {
	basket := &stubBasket{err: errors.New("pgx: connection refused")}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodPost, "/updateBasket", `{
		"consentId": "c1",
		"basketItems": [{"slug": "bland-selv-sodavand", "quantity": 1}]
	}`)
	requireStatus(t, w, http.StatusInternalServerError)
	if strings.Contains(w.Body.String(), "pgx") {
		t.Fatalf("internal error text leaked: %s", w.Body.String())
	}
}

func TestUpdateBasketUnknownSession(t *testing.T) {
	basket := &stubBasket{err: domain.ErrNotFound}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodPost, "/updateBasket", `{
		"consentId": "ukendt",
		"basketItems": [{"slug": "bland-selv-sodavand", "quantity": 1}]
	}`)
	requireStatus(t, w, http.StatusNotFound)
}

func TestUpdateConsent(t *testing.T) {
	basket := &stubBasket{session: &domain.Session{ConsentID: "c1"}}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodPost, "/updateConsent", `{"consentId": "c1", "allowCookies": true}`)
	requireStatus(t, w, http.StatusOK)
	if basket.allowCalls != 1 {
		t.Fatalf("expected SetAllowCookies call")
	}
}

func TestRevokeConsent(t *testing.T) {
	basket := &stubBasket{session: &domain.Session{ConsentID: "c1"}}
	router := newTestRouter(t, Deps{Basket: basket})

	w := doJSON(t, router, http.MethodDelete, "/revokeConsent?consentId=c1", "")
	requireStatus(t, w, http.StatusNoContent)
	if basket.revokedID != "c1" {
		t.Fatalf("expected revoke for c1, got %q", basket.revokedID)
	}

	w = doJSON(t, router, http.MethodDelete, "/revokeConsent", "")
	requireStatus(t, w, http.StatusBadRequest)
}
