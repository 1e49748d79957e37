package postnord

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

//go:embed servicepoints_fixture.json
var fixture []byte

// Query identifies the address to search for nearby service points.
type Query struct {
	City         string
	PostalCode   string
	StreetName   string
	StreetNumber string
}

// Client finds nearby parcel service points. With an empty API key it
// serves an embedded fixture instead of calling the carrier, which is the
// local-development mode.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FindServicePoints returns the carrier response unmodified. Callers pass
// the JSON through to the storefront as-is.
func (c *Client) FindServicePoints(ctx context.Context, q Query) (json.RawMessage, error) {
	if c.apiKey == "" {
		return json.RawMessage(fixture), nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("returnType", "json")
	params.Set("countryCode", "DK")
	params.Set("city", q.City)
	params.Set("postalCode", q.PostalCode)
	params.Set("streetName", q.StreetName)
	params.Set("streetNumber", q.StreetNumber)
	params.Set("numberOfServicePoints", "10")

	endpoint := c.baseURL + "/rest/businesslocation/v5/servicepoints/nearest/byaddress?" + params.Encode()

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
		return nil, fmt.Errorf("postnord: status %d: %s", resp.StatusCode, string(raw))
	}
	return json.RawMessage(raw), nil
}
