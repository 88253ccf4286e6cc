package billing

import (
	"errors"
	"log"
	"net/http"

	"company-portal/internal/payments"

	"github.com/gin-gonic/gin"
)

// PaymentSuccess is the browser's return stop after checkout. Display only;
// the ledger is mutated exclusively by webhook reconciliation.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id in query"})
		return
	}

	result, err := h.Service.ResolveSuccess(sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session or user not found"})
			return
		}
		log.Printf("resolve success page for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading success page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Subscription Successful",
		"payment_status": result.PaymentStatus,
		"user_id":        result.UserID,
		"email":          result.Email,
		"transactions":   result.Transactions,
		"status":         true,
	})
}

func (h *Handler) PaymentCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Payment canceled", "status": false})
}
