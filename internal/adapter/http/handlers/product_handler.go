package handlers

import (
	"errors"
	"net/http"

	response "varejo_pos/internal/adapter/http/dto/response"
	"varejo_pos/internal/usecase"
	"varejo_pos/pkg"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// GetProduct returns a single product scoped to the store in the query
// string. A product that exists under another store is reported as not found.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	storeID := c.Query("store_id")
	productID := c.Param("product_id")

	product, err := h.usecase.GetByID(c.Request.Context(), storeID, productID)
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProduct(product))
}

func mapProductError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidStoreID),
		errors.Is(err, usecase.ErrInvalidProductID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Unexpected error fetching product", err, http.StatusInternalServerError)
	}
}
