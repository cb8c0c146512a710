package interfaces

import (
	"context"
	"varejo_pos/internal/domain/entities"
)

// IProductRepository abstracts DynamoDB persistence for Product lookups.
//
// Every operation is scoped by storeID; a product that exists under another
// store is simply absent from the result, never an authorization error.

type IProductRepository interface {
	// FindByIDs resolves the requested ids in one batch. Missing ids are
	// omitted from the result; callers decide how to report them.
	FindByIDs(ctx context.Context, storeID string, ids []string) ([]entities.Product, error)
	GetByID(ctx context.Context, storeID, id string) (entities.Product, error)
}
