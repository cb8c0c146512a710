package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"varejo_pos/internal/adapter/http/handlers/mocks"
	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestProductHandler_GetProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProduct)

		uc.EXPECT().GetByID(gomock.Any(), "S1", "P1").Return(entities.Product{
			ID: "P1", StoreID: "S1", Name: "Espresso Beans", Active: true, PriceCents: 1000, Quantity: 10,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/P1?store_id=S1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["product_id"] != "P1" || resp["price_cents"] != float64(1000) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing store id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProduct)

		uc.EXPECT().GetByID(gomock.Any(), "", "P1").Return(entities.Product{}, usecase.ErrInvalidStoreID)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/P1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("other store's product is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProduct)

		uc.EXPECT().GetByID(gomock.Any(), "S2", "P1").Return(entities.Product{}, usecase.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/P1?store_id=S2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("unexpected error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProduct)

		uc.EXPECT().GetByID(gomock.Any(), "S1", "P1").Return(entities.Product{}, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/products/P1?store_id=S1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
