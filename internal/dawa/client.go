package dawa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Kategori A is DAWA's marker for an exact, unambiguous address match.
// B is a close match after washing, C a guess. Only A is accepted.
const KategoriExact = "A"

// Result is the outcome of washing one address. On a non-A match OK is
// false and Raw still carries the full upstream payload for diagnostics.
type Result struct {
	OK           bool            `json:"ok"`
	Kategori     string          `json:"kategori"`
	StreetName   string          `json:"streetName"`
	StreetNumber string          `json:"streetNumber"`
	PostalCode   string          `json:"postalCode"`
	City         string          `json:"city"`
	Raw          json.RawMessage `json:"raw"`
}

type washResponse struct {
	Kategori   string `json:"kategori"`
	Resultater []struct {
		Adresse struct {
			Vejnavn    string `json:"vejnavn"`
			Husnr      string `json:"husnr"`
			Postnr     string `json:"postnr"`
			Postnrnavn string `json:"postnrnavn"`
		} `json:"adresse"`
	} `json:"resultater"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Wash runs the free-text address through DAWA datavask. Every call is a
// live upstream request; results are never cached.
func (c *Client) Wash(ctx context.Context, address, city, postalCode string) (*Result, error) {
	betegnelse := strings.TrimSpace(fmt.Sprintf("%s, %s %s", address, postalCode, city))
	endpoint := c.baseURL + "/datavask/adresser?betegnelse=" + url.QueryEscape(betegnelse)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dawa: status %d: %s", resp.StatusCode, string(raw))
	}

	var wash washResponse
	if err := json.Unmarshal(raw, &wash); err != nil {
		return nil, fmt.Errorf("decode dawa response: %w", err)
	}

	out := &Result{
		Kategori: wash.Kategori,
		Raw:      json.RawMessage(raw),
	}
	if wash.Kategori != KategoriExact || len(wash.Resultater) == 0 {
		return out, nil
	}

	top := wash.Resultater[0].Adresse
	out.OK = true
	out.StreetName = top.Vejnavn
	out.StreetNumber = top.Husnr
	out.PostalCode = top.Postnr
	out.City = top.Postnrnavn
	return out, nil
}
