package routes

import (
	"company-portal/config"
	adminapi "company-portal/internal/api/admin"
	authapi "company-portal/internal/api/auth"
	billingapi "company-portal/internal/api/billing"
	plansapi "company-portal/internal/api/plans"
	stripewebhooks "company-portal/internal/api/stripewebhook"
	usersapi "company-portal/internal/api/users"
	"company-portal/internal/app/http/middleware"
	stripeinfra "company-portal/internal/infra/stripe"
	"company-portal/internal/payments"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *payments.Service, gateway *stripeinfra.Client) {
	billingHandler := billingapi.NewHandler(service)
	webhookHandler := stripewebhooks.NewHandler(service)
	syncHandler := plansapi.NewSyncHandler(gateway)

	// Raw body route: registered outside the sanitize group so the gateway's
	// signed bytes arrive untouched.
	r.POST("/webhook", webhookHandler.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Unauthenticated, keyed by opaque session id. Read-only.
	r.GET("/api/payment/success", billingHandler.PaymentSuccess)
	r.GET("/api/payment/cancel", billingHandler.PaymentCancel)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plansapi.ListPlans)

	// Google sign-in is optional; without a client id the consent URL
	// would be broken, so the routes are not registered at all.
	if config.GOOGLE_CLIENT_ID != "" {
		public.GET("/auth/google", authapi.GoogleStart)
		public.GET("/auth/google/callback", authapi.GoogleCallback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.GET("/transactions", billingHandler.GetTransactionHistory)
	auth.POST("/create-checkout-session", billingHandler.CreateCheckoutSession)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/transactions", adminapi.ListAllTransactions)
	admin.POST("/sync-plans", syncHandler.SyncPlansFromStripe)
}
