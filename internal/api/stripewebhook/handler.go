package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"company-portal/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

type Handler struct {
	Service *payments.Service
}

func NewHandler(service *payments.Service) *Handler {
	return &Handler{Service: service}
}

// StripeWebhook authenticates and reconciles one gateway event delivery.
// Anything past signature verification is acknowledged with 2xx unless
// reconciliation itself fails, so the gateway only redelivers on genuine
// processing failure.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := h.Service.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Println("Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch string(event.Type) {
	case payments.EventPaymentSucceeded:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.Service.ApplySucceededPayment(&pi); err != nil {
			log.Printf("webhook %s: reconcile succeeded payment %s: %v", event.ID, pi.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})

	case payments.EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.Service.ApplyFailedPayment(&pi); err != nil {
			log.Printf("webhook %s: reconcile failed payment %s: %v", event.ID, pi.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
