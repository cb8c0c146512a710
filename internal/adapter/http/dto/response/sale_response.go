package response

import (
	"time"

	"varejo_pos/internal/domain/entities"
)

type SaleItemResponse struct {
	ItemID         string `json:"item_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type SaleResponse struct {
	SaleID        string             `json:"sale_id"`
	ID            string             `json:"id"`
	StoreID       string             `json:"store_id"`
	UserID        string             `json:"user_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	PaymentRef    string             `json:"payment_ref,omitempty"`
	DiscountCents int64              `json:"discount_cents"`
	TotalCents    int64              `json:"total_cents"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

func FromSale(s entities.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ItemID:         it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			SubtotalCents:  it.SubtotalCents,
		})
	}
	return SaleResponse{
		SaleID:        s.ID,
		ID:            s.ID,
		StoreID:       s.StoreID,
		UserID:        s.UserID,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		PaymentRef:    s.PaymentRef,
		DiscountCents: s.DiscountCents,
		TotalCents:    s.TotalCents,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Items:         items,
	}
}

func FromSales(sales []entities.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, FromSale(s))
	}
	return out
}
