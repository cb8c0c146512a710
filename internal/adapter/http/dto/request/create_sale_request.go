package request

import (
	"encoding/json"
	"strings"
)

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreateSaleRequest is the POS checkout payload.
//
// Prices are deliberately absent: unit prices and the total are resolved
// from the product catalog server-side. All monetary fields are minor
// currency units (cents).
type CreateSaleRequest struct {
	StoreID       string            `json:"store_id" binding:"required"`
	CustomerID    string            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	DiscountCents int64             `json:"discount_cents"`
	Items         []SaleItemRequest `json:"items" binding:"required"`

	// PaymentPayload is forwarded to the card gateway as-is; the service
	// overwrites the transaction amount with the assembled total.
	PaymentPayload json.RawMessage `json:"payment_payload,omitempty"`
}

func (r CreateSaleRequest) ResolveStoreID() string {
	return strings.TrimSpace(r.StoreID)
}

func (r CreateSaleRequest) ResolveCustomerID() string {
	return strings.TrimSpace(r.CustomerID)
}
