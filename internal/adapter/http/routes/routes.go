package routes

import (
	"log"
	"os"
	"strconv"

	"varejo_pos/internal/adapter/http/handlers"
	repository2 "varejo_pos/internal/adapter/persistence/repository"
	"varejo_pos/internal/infrastructure/database"
	"varejo_pos/internal/infrastructure/payments"
	"varejo_pos/internal/usecase"
	"varejo_pos/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	productRepo := repository2.NewProductDynamoRepository(ddb)
	saleRepo := repository2.NewSaleDynamoRepository(ddb)

	// Card captures are optional: without an access token sales are
	// recorded without contacting the payment provider.
	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	saleUseCase := usecase.NewSaleUseCase(productRepo, saleRepo, paymentGateway)
	productUseCase := usecase.NewProductUseCase(productRepo)

	saleHandler := handlers.NewSaleHandler(saleUseCase)
	productHandler := handlers.NewProductHandler(productUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addSaleRoutes(v1, saleHandler, productHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
