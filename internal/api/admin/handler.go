package admin

import (
	"net/http"

	"company-portal/database"
	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/companies"
	"company-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func AdminDashboard(c *gin.Context) {
	var userCount, companyCount, transactionCount, subscriptionCount int64
	database.DB.Model(&users.User{}).Count(&userCount)
	database.DB.Model(&companies.Company{}).Count(&companyCount)
	database.DB.Model(&billing.Transaction{}).Count(&transactionCount)
	database.DB.Model(&billing.UserSubscription{}).Count(&subscriptionCount)

	c.JSON(http.StatusOK, gin.H{
		"users":         userCount,
		"companies":     companyCount,
		"transactions":  transactionCount,
		"subscriptions": subscriptionCount,
	})
}

func ListAllUsers(c *gin.Context) {
	var allUsers []users.User
	if err := database.DB.Preload("Company").Order("created_at DESC").Find(&allUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, allUsers)
}

func ListAllTransactions(c *gin.Context) {
	var txns []billing.Transaction
	if err := database.DB.Preload("Plan").Order("created_at DESC").Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}
