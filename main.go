package main

import (
	"os"
	"time"

	"company-portal/config"
	"company-portal/database"
	routes "company-portal/internal/app/http"
	stripeinfra "company-portal/internal/infra/stripe"
	"company-portal/internal/payments"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	gateway := stripeinfra.NewClient(config.STRIPE_SECRET_KEY, config.STRIPE_WEBHOOK_SECRET)
	service := payments.NewService(payments.NewLedger(database.DB), gateway, config.APP_URL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, service, gateway)

	r.Run(":" + config.PORT)
}
