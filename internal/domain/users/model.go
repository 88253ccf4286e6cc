package users

import (
	"company-portal/internal/domain/companies"
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	FirstName    string  `gorm:"size:50" json:"first_name"`
	LastName     string  `gorm:"size:50" json:"last_name"`
	MobileNumber string  `gorm:"size:50" json:"mobile_number"`
	Email        string  `gorm:"size:100;not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `json:"role"`

	// IsVerified flips company-wide once any seat of the company pays.
	IsVerified bool `json:"is_verified"`

	CompanyID uint               `gorm:"index" json:"company_id"`
	Company   *companies.Company `json:"company,omitempty"`

	// Lazily created on first checkout, never reassigned afterwards.
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
