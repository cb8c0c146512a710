package routes

import (
	"varejo_pos/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSales    = "/sales"
	PathProducts = "/products"
)

func addSaleRoutes(rg *gin.RouterGroup, saleHandler *handlers.SaleHandler, productHandler *handlers.ProductHandler) {
	sales := rg.Group(PathSales)
	{
		sales.POST("", saleHandler.CreateSale)
		sales.GET("", saleHandler.ListSales)
		sales.GET("/:sale_id", saleHandler.GetSale)
		sales.PATCH("/:sale_id/cancel", saleHandler.CancelSale)
		sales.PATCH("/:sale_id/refund", saleHandler.RefundSale)
	}

	products := rg.Group(PathProducts)
	{
		products.GET("/:product_id", productHandler.GetProduct)
	}
}
