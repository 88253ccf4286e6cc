package billing

import (
	"errors"
	"log"
	"net/http"

	"company-portal/internal/payments"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *payments.Service
}

func NewHandler(service *payments.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var req payments.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id/amount"})
		return
	}

	url, err := h.Service.InitiateCheckout(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout request"})
		case errors.Is(err, payments.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan or user not found"})
		default:
			log.Printf("checkout for user %d failed: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
