package response

import (
	"varejo_pos/internal/domain/entities"
)

type ProductResponse struct {
	ProductID  string `json:"product_id"`
	ID         string `json:"id"`
	StoreID    string `json:"store_id"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ID,
		ID:         p.ID,
		StoreID:    p.StoreID,
		Name:       p.Name,
		Active:     p.Active,
		PriceCents: p.PriceCents,
		Quantity:   p.Quantity,
	}
}
