package billing

import "time"

// UserSubscription records the first successful charge of a gateway
// subscription period. Rows are append-only; the unique (user_id,
// stripe_charge_id) index is what makes duplicate webhook delivery safe.
type UserSubscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_subscriptions_user_charge" json:"user_id"`
	PlanID uint `json:"plan_id"`

	Status               string `json:"status"`
	StripeSubscriptionID string `gorm:"column:stripe_subscription_id" json:"stripe_subscription_id"`
	StripeChargeID       string `gorm:"column:stripe_charge_id;not null;uniqueIndex:idx_user_subscriptions_user_charge" json:"stripe_charge_id"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	CreatedAt time.Time `json:"created_at"`
}
