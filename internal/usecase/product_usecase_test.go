package usecase

import (
	"context"
	"errors"
	"testing"

	"varejo_pos/internal/domain/entities"
	mock_interfaces "varejo_pos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProductUseCase_GetByID(t *testing.T) {
	t.Run("empty store id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		if _, err := uc.GetByID(context.Background(), "  ", "P1"); !errors.Is(err, ErrInvalidStoreID) {
			t.Fatalf("expected ErrInvalidStoreID, got %v", err)
		}
	})

	t.Run("empty product id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		if _, err := uc.GetByID(context.Background(), "S1", ""); !errors.Is(err, ErrInvalidProductID) {
			t.Fatalf("expected ErrInvalidProductID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "S1", "P9").Return(entities.Product{}, nil)

		if _, err := uc.GetByID(context.Background(), "S1", "P9"); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "S1", "P1").Return(entities.Product{ID: "P1", StoreID: "S1", Name: "Espresso Beans", Active: true, PriceCents: 1000, Quantity: 10}, nil)

		p, err := uc.GetByID(context.Background(), "S1", "P1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Espresso Beans" || p.PriceCents != 1000 {
			t.Fatalf("unexpected product: %+v", p)
		}
	})
}
