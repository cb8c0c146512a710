package usecase

import (
	"context"
	"strings"

	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase/interfaces"
)

// IProductUseCase exposes the availability lookup the POS front uses before
// building a sale. Product management (create/edit/restock) lives in a
// separate service.

type IProductUseCase interface {
	GetByID(ctx context.Context, storeID, id string) (entities.Product, error)
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func (u *ProductUseCase) GetByID(ctx context.Context, storeID, id string) (entities.Product, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return entities.Product{}, ErrInvalidStoreID
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrInvalidProductID
	}

	p, err := u.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}
