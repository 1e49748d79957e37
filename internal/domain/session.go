package domain

import "time"

// Session is an anonymous shopping session keyed by an opaque consent id
// handed to the browser as a cookie value. Created lazily on first basket
// read, deleted by the cleanup job or on consent withdrawal.
type Session struct {
	ConsentID       string          `json:"consentId"`
	BasketItems     []BasketItem    `json:"basketItems"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	AllowCookies    bool            `json:"allowCookies"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BasketItem is one package line in the basket. TotalPriceOre and
// TotalRecyclingFeeOre are always recomputed server-side on write, never
// trusted from the client.
type BasketItem struct {
	Slug                 string         `json:"slug"`
	Quantity             int            `json:"quantity"`
	PricePerPackageOre   int64          `json:"pricePerPackage"`
	TotalPriceOre        int64          `json:"totalPrice"`
	TotalRecyclingFeeOre int64          `json:"totalRecyclingFee"`
	PackageSize          int            `json:"packages_size,omitempty"`
	SugarPreference      string         `json:"sugarPreference,omitempty"`
	SelectedDrinks       map[string]int `json:"selectedDrinks,omitempty"`
}

// CustomerDetails is the checkout address block, normally filled in from a
// validated DAWA match.
type CustomerDetails struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	StreetName   string `json:"streetName,omitempty"`
	StreetNumber string `json:"streetNumber,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
	PickupPoint  string `json:"pickupPoint,omitempty"`
}
