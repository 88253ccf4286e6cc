package billing

import (
	"company-portal/internal/domain/plans"
	"company-portal/internal/domain/users"
	"time"
)

const (
	StatusPending = "pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Transaction is one attempted payment. Rows are born pending at checkout
// time and settle exactly once per charge; they are never deleted.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Opaque correlation token minted at checkout and embedded in the
	// gateway-side subscription metadata.
	TransactionPublicID string `gorm:"column:transaction_public_id;not null;uniqueIndex:idx_transactions_public_id" json:"transaction_public_id"`

	UserID uint        `gorm:"index" json:"user_id"`
	User   users.User  `json:"-"`
	PlanID uint        `json:"plan_id"`
	Plan   *plans.Plan `json:"plan,omitempty"`

	// Always the backend-resolved plan amount, never client input.
	Amount int64 `json:"amount"`

	StripePaymentID   *string `gorm:"column:stripe_payment_id" json:"stripe_payment_id"`
	StripeChargeID    *string `gorm:"column:stripe_charge_id;index" json:"stripe_charge_id"`
	PaymentStatus     string  `gorm:"not null;default:'pending'" json:"payment_status"`
	PaymentReasonCode *string `json:"payment_reason_code"`

	CreatedAt time.Time `json:"created_at"`
}
