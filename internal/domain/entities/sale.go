package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SaleStatus represents the lifecycle of a sale.
//
// Domain notes:
//   - Sales created by the POS flow are born COMPLETED; PENDING exists for
//     flows that stage a sale before payment settles.
//   - CANCELED and REFUNDED are terminal.
//   - Transitions never restore stock: quantities track physical movement
//     recorded at sale time, not ledger state.

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCanceled  SaleStatus = "CANCELED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

var (
	ErrSaleNoItems          = errors.New("sale must have at least one item")
	ErrInvalidQuantity      = errors.New("item quantity must be greater than 0")
	ErrInvalidUnitPrice     = errors.New("item unit price cannot be negative")
	ErrInvalidDiscount      = errors.New("discount cannot be negative")
	ErrDiscountExceedsTotal = errors.New("discount cannot exceed total value")

	// ErrStockConflict reports a persist transaction canceled by the stock
	// guard: a concurrent sale consumed the quantity between assembly and
	// commit. Nothing is applied when it happens.
	ErrStockConflict = errors.New("insufficient stock for one or more items")

	ErrSaleAlreadyCanceled = errors.New("sale already canceled")
	ErrCancelRefundedSale  = errors.New("cannot cancel a refunded sale")
	ErrSaleAlreadyRefunded = errors.New("sale already refunded")
	ErrRefundCanceledSale  = errors.New("cannot refund a canceled sale")
	ErrRefundPendingSale   = errors.New("cannot refund a pending sale")
)

// SaleItem is one product+quantity line inside a sale.
//
// Name and unit price are snapshots captured at sale time; later product
// edits never change a persisted line. SubtotalCents is always
// Quantity * UnitPriceCents.
type SaleItem struct {
	ID             string `json:"id"`
	SaleID         string `json:"sale_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// Sale is the aggregate persisted by the sale flow.
//
// Storage model (DynamoDB):
//   - sales table: PK id, GSI store_id-index (PK: store_id)
//   - sale_items table: PK sale_id, SK id
//
// TotalCents always equals the sum of item subtotals minus DiscountCents
// and is computed from resolved product data, never taken from the caller.
type Sale struct {
	ID            string     `json:"id"`
	StoreID       string     `json:"store_id"`
	UserID        string     `json:"user_id"`
	CustomerID    string     `json:"customer_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	PaymentRef    string     `json:"payment_ref,omitempty"`
	DiscountCents int64      `json:"discount_cents"`
	TotalCents    int64      `json:"total_cents"`
	Status        SaleStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Items         []SaleItem `json:"items"`
}

// NewSaleItem builds a priced line from an authoritative product snapshot.
func NewSaleItem(productID, productName string, quantity, unitPriceCents int64) (SaleItem, error) {
	if quantity <= 0 {
		return SaleItem{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return SaleItem{}, ErrInvalidUnitPrice
	}

	return SaleItem{
		ID:             uuid.NewString(),
		ProductID:      productID,
		ProductName:    productName,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
		SubtotalCents:  quantity * unitPriceCents,
	}, nil
}

// NewSale assembles the aggregate, sums item subtotals and applies the
// discount. A discount equal to the total is valid (total 0); a discount
// beyond it fails.
func NewSale(storeID, userID, customerID, paymentMethod string, items []SaleItem, discountCents int64) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrSaleNoItems
	}
	if discountCents < 0 {
		return nil, ErrInvalidDiscount
	}

	var totalCents int64
	for _, it := range items {
		totalCents += it.SubtotalCents
	}
	totalCents -= discountCents
	if totalCents < 0 {
		return nil, ErrDiscountExceedsTotal
	}

	saleID := uuid.NewString()
	for i := range items {
		items[i].SaleID = saleID
	}

	now := time.Now().UTC()
	return &Sale{
		ID:            saleID,
		StoreID:       storeID,
		UserID:        userID,
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
		DiscountCents: discountCents,
		TotalCents:    totalCents,
		Status:        SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         items,
	}, nil
}

// Cancel transitions the sale to CANCELED. Allowed from any state except
// the terminal ones.
func (s *Sale) Cancel() error {
	switch s.Status {
	case SaleStatusCanceled:
		return ErrSaleAlreadyCanceled
	case SaleStatusRefunded:
		return ErrCancelRefundedSale
	}
	s.Status = SaleStatusCanceled
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Refund transitions the sale to REFUNDED. Only COMPLETED sales can be
// refunded.
func (s *Sale) Refund() error {
	switch s.Status {
	case SaleStatusRefunded:
		return ErrSaleAlreadyRefunded
	case SaleStatusCanceled:
		return ErrRefundCanceledSale
	case SaleStatusPending:
		return ErrRefundPendingSale
	}
	s.Status = SaleStatusRefunded
	s.UpdatedAt = time.Now().UTC()
	return nil
}
