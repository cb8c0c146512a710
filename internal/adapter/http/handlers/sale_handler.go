package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	request "varejo_pos/internal/adapter/http/dto/request"
	response "varejo_pos/internal/adapter/http/dto/response"
	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase"
	"varejo_pos/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidSalePayload = pkg.NewDomainErrorSimple("INVALID_SALE_INPUT", "Invalid sale payload", http.StatusBadRequest)

// SaleHandler handles HTTP requests for the POS sale workflow.
//
// The authenticated user id arrives in the X-User-ID header; authentication
// itself is handled upstream.

type SaleHandler struct {
	usecase usecase.ISaleUseCase
}

func NewSaleHandler(uc usecase.ISaleUseCase) *SaleHandler {
	return &SaleHandler{usecase: uc}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var payload request.CreateSaleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSalePayload.HTTPStatus, errInvalidSalePayload.ToHTTPError())
		return
	}

	userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
	log.Printf("[sale][handler] create start store_id=%s user_id=%s items=%d", payload.ResolveStoreID(), userID, len(payload.Items))

	items := make([]usecase.SaleItemInput, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, usecase.SaleItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	sale, err := h.usecase.CreateSale(c.Request.Context(), usecase.CreateSaleInput{
		StoreID:        payload.ResolveStoreID(),
		UserID:         userID,
		CustomerID:     payload.ResolveCustomerID(),
		PaymentMethod:  payload.PaymentMethod,
		DiscountCents:  payload.DiscountCents,
		Items:          items,
		PaymentPayload: payload.PaymentPayload,
	})
	if err != nil {
		log.Printf("[sale][handler] create failed store_id=%s err=%v", payload.ResolveStoreID(), err)
		appErr := mapSaleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[sale][handler] create success sale_id=%s total_cents=%d", sale.ID, sale.TotalCents)

	c.JSON(http.StatusCreated, response.FromSale(sale))
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	saleID := c.Param("sale_id")

	sale, err := h.usecase.GetByID(c.Request.Context(), saleID)
	if err != nil {
		appErr := mapSaleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSale(sale))
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	storeID := c.Query("store_id")
	sortBy := c.Query("sort_by")

	sales, err := h.usecase.ListByStore(c.Request.Context(), storeID, sortBy)
	if err != nil {
		appErr := mapSaleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSales(sales))
}

func (h *SaleHandler) CancelSale(c *gin.Context) {
	h.patchSaleStatus(c, h.usecase.CancelSale)
}

func (h *SaleHandler) RefundSale(c *gin.Context) {
	h.patchSaleStatus(c, h.usecase.RefundSale)
}

func (h *SaleHandler) patchSaleStatus(c *gin.Context, transition func(ctx context.Context, saleID string) (entities.Sale, error)) {
	saleID := c.Param("sale_id")

	sale, err := transition(c.Request.Context(), saleID)
	if err != nil {
		log.Printf("[sale][handler] status change failed sale_id=%s err=%v", saleID, err)
		appErr := mapSaleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[sale][handler] status change success sale_id=%s status=%s", sale.ID, sale.Status)

	c.JSON(http.StatusOK, response.FromSale(sale))
}

// mapSaleError translates usecase and domain errors into API errors.
// Validation failures carry the wrapped message through so callers can see
// which product or limit was violated.
func mapSaleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidStoreID),
		errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidSaleID),
		errors.Is(err, usecase.ErrInvalidProductID),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrDuplicateItem),
		errors.Is(err, usecase.ErrTooManyItems),
		errors.Is(err, usecase.ErrUnknownSortKey),
		errors.Is(err, entities.ErrSaleNoItems),
		errors.Is(err, entities.ErrInvalidQuantity),
		errors.Is(err, entities.ErrInvalidUnitPrice),
		errors.Is(err, entities.ErrInvalidDiscount),
		errors.Is(err, entities.ErrDiscountExceedsTotal),
		errors.Is(err, usecase.ErrProductInactive),
		errors.Is(err, usecase.ErrInsufficientStock):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrSaleNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrSaleStatusConflict),
		errors.Is(err, entities.ErrStockConflict),
		errors.Is(err, entities.ErrSaleAlreadyCanceled),
		errors.Is(err, entities.ErrCancelRefundedSale),
		errors.Is(err, entities.ErrSaleAlreadyRefunded),
		errors.Is(err, entities.ErrRefundCanceledSale),
		errors.Is(err, entities.ErrRefundPendingSale):
		return pkg.NewDomainErrorSimple("CONFLICT", err.Error(), http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Unexpected error processing sale", err, http.StatusInternalServerError)
	}
}
