package domain

import "time"

// Order statuses. An order starts as new and is advanced by gateway
// callbacks; paid_and_captured means the amount was also captured.
const (
	OrderStatusNew             = "new"
	OrderStatusPaid            = "paid"
	OrderStatusPaidAndCaptured = "paid_and_captured"
	OrderStatusFailed          = "failed"
)

// Order is created when checkout starts and updated as the gateway reports
// payment progress. Basket and customer details are snapshots taken at
// checkout time; later session edits do not affect the order.
type Order struct {
	OrderID         string          `json:"orderId"`
	SessionID       string          `json:"session_id,omitempty"`
	Status          string          `json:"status"`
	BasketItems     []BasketItem    `json:"basketItems"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	TotalPriceOre   int64           `json:"totalPrice"`
	Currency        string          `json:"currency"`
	PaymentID       int64           `json:"paymentId,omitempty"`
	PaymentLink     string          `json:"paymentLink,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Accepted reports whether the order's payment went through.
func (o Order) Accepted() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusPaidAndCaptured
}
