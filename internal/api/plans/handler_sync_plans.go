package plans

import (
	"net/http"

	"company-portal/database"
	"company-portal/internal/domain/plans"
	stripeclient "company-portal/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

type SyncHandler struct {
	Gateway *stripeclient.Client
}

func NewSyncHandler(gateway *stripeclient.Client) *SyncHandler {
	return &SyncHandler{Gateway: gateway}
}

// SyncPlansFromStripe pulls active recurring prices from the gateway into
// the plans table. Admin-only; the checkout path itself treats plans as
// read-only.
func (h *SyncHandler) SyncPlansFromStripe(c *gin.Context) {
	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := h.Gateway.Prices(params)

	created := 0
	updated := 0
	skipped := 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}
		if p.Metadata != nil && p.Metadata["visible"] == "false" {
			skipped++
			continue
		}

		displayName := p.Product.Name
		if p.Metadata != nil {
			if v := p.Metadata["plan"]; v != "" {
				displayName = v
			}
		}

		var existing plans.Plan
		err := database.DB.Where("stripe_price_id = ?", p.ID).First(&existing).Error
		if err != nil {
			plan := plans.Plan{
				Name:          displayName,
				StripePriceID: p.ID,
				Amount:        p.UnitAmount,
				Interval:      string(p.Recurring.Interval),
			}
			if err := database.DB.Create(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
				return
			}
			created++
		} else {
			existing.Name = displayName
			existing.Amount = p.UnitAmount
			existing.Interval = string(p.Recurring.Interval)
			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
				return
			}
			updated++
		}
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}
