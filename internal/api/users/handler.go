package users

import (
	"net/http"

	"company-portal/database"
	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/users"
	stripeinfra "company-portal/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Preload("Company").Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	subscriptionStatus := ""
	var sub billing.UserSubscription
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&sub).Error; err == nil {
		subscriptionStatus = sub.Status
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  user.ID,
		"first_name":          user.FirstName,
		"last_name":           user.LastName,
		"email":               user.Email,
		"role":                user.Role,
		"is_verified":         user.IsVerified,
		"company":             user.Company,
		"subscription_status": stripeinfra.NormalizeStripeStatus(subscriptionStatus),
	})
}
