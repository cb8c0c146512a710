package interfaces

import (
	"context"
	"varejo_pos/internal/domain/entities"
)

// ISaleRepository abstracts DynamoDB persistence for the Sale aggregate.
//
// The sale flow needs to:
//   - persist a new sale, its items and the stock decrements atomically
//   - load a sale with its items
//   - list a store's sales
//   - transition status with a compare-and-set guard

type ISaleRepository interface {
	// Create performs the atomic persist: sale row, one row per item, and a
	// guarded stock decrement per item, all in one transaction. When any
	// decrement guard fails the whole write is rolled back and the error
	// wraps ErrStockConflict.
	Create(ctx context.Context, sale *entities.Sale) error

	// GetByID returns the sale with its items, or a zero-value sale when
	// absent.
	GetByID(ctx context.Context, id string) (entities.Sale, error)

	// ListByStoreID returns the store's sales without their items.
	ListByStoreID(ctx context.Context, storeID string) ([]entities.Sale, error)

	// UpdateStatus transitions id from one status to another. It returns a
	// zero-value sale when the sale is absent or its status no longer
	// matches from (lost a concurrent transition).
	UpdateStatus(ctx context.Context, id string, from, to entities.SaleStatus) (entities.Sale, error)
}
