package entities

import "time"

// Product is the sellable item as the sale flow sees it.
//
// Storage model (DynamoDB):
//   - PK: store_id (string)
//   - SK: id (string)
//
// The composite key doubles as the tenant filter: every lookup carries the
// caller's store_id, so rows belonging to another store are unreachable and
// indistinguishable from nonexistent ones.
//
// Monetary representation:
//   - PriceCents is the unit sale price in minor currency units. All line
//     arithmetic stays on int64 so totals never accumulate float drift.
//
// Quantity is the on-hand stock. It must never go negative; the only
// mutation path inside the sale flow is the guarded decrement performed by
// the sale repository's persist transaction.
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
