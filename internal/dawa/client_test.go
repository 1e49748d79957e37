package dawa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWashExactMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datavask/adresser" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("betegnelse"); got != "Vestergade 12, 8000 Aarhus C" {
			t.Fatalf("unexpected betegnelse %q", got)
		}
		w.Write([]byte(`{
			"kategori": "A",
			"resultater": [{"adresse": {"vejnavn": "Vestergade", "husnr": "12", "postnr": "8000", "postnrnavn": "Aarhus C"}}]
		}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Wash(context.Background(), "Vestergade 12", "Aarhus C", "8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected OK for kategori A")
	}
	if res.StreetName != "Vestergade" || res.StreetNumber != "12" {
		t.Fatalf("unexpected street: %+v", res)
	}
	if res.PostalCode != "8000" || res.City != "Aarhus C" {
		t.Fatalf("unexpected postal data: %+v", res)
	}
}

func TestWashInexactMatch(t *testing.T) {
	payload := `{"kategori": "B", "resultater": [{"adresse": {"vejnavn": "Vestergade", "husnr": "12", "postnr": "8000", "postnrnavn": "Aarhus C"}}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Wash(context.Background(), "Vestergade 12", "Aarhus", "8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK {
		t.Fatalf("kategori B must not validate")
	}
	if res.Kategori != "B" {
		t.Fatalf("unexpected kategori %q", res.Kategori)
	}
	if string(res.Raw) != payload {
		t.Fatalf("expected raw upstream payload to be preserved")
	}
}

func TestWashNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kategori": "A", "resultater": []}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Wash(context.Background(), "Findes Ikke 1", "Ingensted", "0000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK {
		t.Fatalf("empty resultater must not validate")
	}
}

func TestWashUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Wash(context.Background(), "Vestergade 12", "Aarhus C", "8000"); err == nil {
		t.Fatalf("expected error on upstream 500")
	}
}
