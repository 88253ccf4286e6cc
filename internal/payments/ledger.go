package payments

import (
	"errors"
	"fmt"

	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/plans"
	"company-portal/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settlement is the terminal field set written onto a pending Transaction.
type Settlement struct {
	PaymentID  string
	ChargeID   string
	Status     string // billing.StatusSuccess or billing.StatusFailed
	ReasonCode string
}

// Ledger is the durable transaction/subscription store. Every mutation
// sequence runs inside InTransaction so concurrent webhook deliveries
// serialize on the database.
type Ledger interface {
	InTransaction(fn func(tx Ledger) error) error

	UserByID(id uint) (*users.User, error)
	UserByStripeCustomer(customerID string) (*users.User, error)
	// ClaimStripeCustomerID stores the mapping only while the user has
	// none. Reports false when a concurrent checkout claimed it first;
	// the mapping is never reassigned once set.
	ClaimStripeCustomerID(userID uint, customerID string) (bool, error)
	VerifyCompanyUsers(companyID uint) error

	PlanByID(id uint) (*plans.Plan, error)

	CreateTransaction(txn *billing.Transaction) error
	TransactionByPublicID(userID uint, publicID string) (*billing.Transaction, error)
	TransactionByCharge(userID uint, chargeID string) (*billing.Transaction, error)
	TransactionsByUser(userID uint) ([]billing.Transaction, error)
	SettleTransaction(userID uint, publicID string, s Settlement) error

	// CreateSubscriptionIfAbsent inserts the row unless one already exists
	// for the same (user_id, stripe_charge_id). Reports whether it inserted.
	CreateSubscriptionIfAbsent(sub *billing.UserSubscription) (bool, error)
}

type gormLedger struct {
	db *gorm.DB
}

// NewLedger creates a Ledger backed by GORM.
func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) InTransaction(fn func(tx Ledger) error) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedger{db: tx})
	})
}

func (l *gormLedger) UserByID(id uint) (*users.User, error) {
	var u users.User
	if err := l.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", id))
	}
	return &u, nil
}

func (l *gormLedger) UserByStripeCustomer(customerID string) (*users.User, error) {
	var u users.User
	if err := l.db.Where("stripe_customer_id = ?", customerID).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user for stripe customer "+customerID)
	}
	return &u, nil
}

func (l *gormLedger) ClaimStripeCustomerID(userID uint, customerID string) (bool, error) {
	res := l.db.Model(&users.User{}).
		Where("id = ? AND stripe_customer_id IS NULL", userID).
		Update("stripe_customer_id", customerID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (l *gormLedger) VerifyCompanyUsers(companyID uint) error {
	return l.db.Model(&users.User{}).
		Where("company_id = ?", companyID).
		Update("is_verified", true).Error
}

func (l *gormLedger) PlanByID(id uint) (*plans.Plan, error) {
	var p plans.Plan
	if err := l.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("plan %d", id))
	}
	return &p, nil
}

func (l *gormLedger) CreateTransaction(txn *billing.Transaction) error {
	return l.db.Create(txn).Error
}

func (l *gormLedger) TransactionByPublicID(userID uint, publicID string) (*billing.Transaction, error) {
	var t billing.Transaction
	err := l.db.Where("user_id = ? AND transaction_public_id = ?", userID, publicID).First(&t).Error
	if err != nil {
		return nil, notFoundOr(err, "transaction "+publicID)
	}
	return &t, nil
}

func (l *gormLedger) TransactionByCharge(userID uint, chargeID string) (*billing.Transaction, error) {
	var t billing.Transaction
	err := l.db.Where("user_id = ? AND stripe_charge_id = ?", userID, chargeID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (l *gormLedger) TransactionsByUser(userID uint) ([]billing.Transaction, error) {
	var txns []billing.Transaction
	err := l.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (l *gormLedger) SettleTransaction(userID uint, publicID string, s Settlement) error {
	res := l.db.Model(&billing.Transaction{}).
		Where("user_id = ? AND transaction_public_id = ?", userID, publicID).
		Updates(map[string]interface{}{
			"stripe_payment_id":   s.PaymentID,
			"stripe_charge_id":    s.ChargeID,
			"payment_status":      s.Status,
			"payment_reason_code": s.ReasonCode,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("settle transaction %s: %w", publicID, ErrNotFound)
	}
	return nil
}

func (l *gormLedger) CreateSubscriptionIfAbsent(sub *billing.UserSubscription) (bool, error) {
	res := l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "stripe_charge_id"},
		},
		DoNothing: true,
	}).Create(sub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
