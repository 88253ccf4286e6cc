package payments

import (
	"fmt"
	"time"

	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// Event kinds the reconciler applies; everything else is acknowledged and
// ignored by the webhook handler.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// VerifyEvent authenticates the raw webhook body against its signature
// header. It is the only step allowed to run before touching the ledger.
func (s *Service) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return s.gateway.ConstructEvent(payload, sigHeader)
}

// correlation is the result of walking the gateway-side cross references:
// charge -> invoice -> subscription -> metadata. Top-level webhook fields
// only carry gateway-internal ids, so the minted public id is always
// recovered from the subscription's stored metadata.
type correlation struct {
	publicID       string
	subscriptionID string
	invoiceStatus  string
	periodStart    time.Time
	periodEnd      time.Time
}

func (s *Service) correlate(invoiceID string) (*correlation, error) {
	inv, err := s.gateway.Invoice(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice %s: %w", invoiceID, err)
	}
	if inv.Subscription == nil || inv.Subscription.ID == "" {
		return nil, fmt.Errorf("invoice %s has no subscription: %w", invoiceID, ErrValidation)
	}

	sub, err := s.gateway.Subscription(inv.Subscription.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch subscription %s: %w", inv.Subscription.ID, err)
	}

	publicID := sub.Metadata["transaction_public_id"]
	if publicID == "" {
		return nil, fmt.Errorf("subscription %s missing transaction_public_id metadata: %w", sub.ID, ErrValidation)
	}

	return &correlation{
		publicID:       publicID,
		subscriptionID: sub.ID,
		invoiceStatus:  string(inv.Status),
		periodStart:    time.Unix(sub.CurrentPeriodStart, 0),
		periodEnd:      time.Unix(sub.CurrentPeriodEnd, 0),
	}, nil
}

// resolveUser fetches the customer from the gateway and maps it to the
// local user. Webhook payloads only carry the customer id, so the gateway
// copy is the authority on whether it still exists.
func (s *Service) resolveUser(customerID string) (*users.User, error) {
	cus, err := s.gateway.Customer(customerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer %s: %w", customerID, err)
	}
	return s.ledger.UserByStripeCustomer(cus.ID)
}

// ApplySucceededPayment records a successful charge: one UserSubscription
// row plus the transaction's terminal Success update. Replays of an already
// applied charge id are no-ops.
func (s *Service) ApplySucceededPayment(pi *stripe.PaymentIntent) error {
	if pi.LatestCharge == nil || pi.LatestCharge.ID == "" {
		return fmt.Errorf("payment intent %s missing latest charge: %w", pi.ID, ErrValidation)
	}
	if pi.Customer == nil || pi.Customer.ID == "" {
		return fmt.Errorf("payment intent %s missing customer: %w", pi.ID, ErrValidation)
	}
	if pi.Invoice == nil || pi.Invoice.ID == "" {
		return fmt.Errorf("payment intent %s missing invoice: %w", pi.ID, ErrValidation)
	}
	chargeID := pi.LatestCharge.ID

	corr, err := s.correlate(pi.Invoice.ID)
	if err != nil {
		return err
	}

	user, err := s.resolveUser(pi.Customer.ID)
	if err != nil {
		return err
	}

	return s.ledger.InTransaction(func(tx Ledger) error {
		txn, err := tx.TransactionByPublicID(user.ID, corr.publicID)
		if err != nil {
			return err
		}

		inserted, err := tx.CreateSubscriptionIfAbsent(&billing.UserSubscription{
			UserID:               user.ID,
			PlanID:               txn.PlanID,
			Status:               corr.invoiceStatus,
			StripeSubscriptionID: corr.subscriptionID,
			StripeChargeID:       chargeID,
			StartAt:              corr.periodStart,
			EndAt:                corr.periodEnd,
		})
		if err != nil {
			return fmt.Errorf("record subscription: %w", err)
		}
		if !inserted {
			// Charge already applied; duplicate delivery.
			return nil
		}

		return tx.SettleTransaction(user.ID, corr.publicID, Settlement{
			PaymentID:  pi.ID,
			ChargeID:   chargeID,
			Status:     billing.StatusSuccess,
			ReasonCode: corr.invoiceStatus,
		})
	})
}

// ApplyFailedPayment records a failed charge on the pending transaction.
// A charge id that already settled a transaction is left untouched.
func (s *Service) ApplyFailedPayment(pi *stripe.PaymentIntent) error {
	if pi.LastPaymentError == nil || pi.LastPaymentError.ChargeID == "" {
		return fmt.Errorf("payment intent %s missing failed charge: %w", pi.ID, ErrValidation)
	}
	if pi.Customer == nil || pi.Customer.ID == "" {
		return fmt.Errorf("payment intent %s missing customer: %w", pi.ID, ErrValidation)
	}
	if pi.Invoice == nil || pi.Invoice.ID == "" {
		return fmt.Errorf("payment intent %s missing invoice: %w", pi.ID, ErrValidation)
	}
	chargeID := pi.LastPaymentError.ChargeID
	reason := pi.LastPaymentError.Msg

	corr, err := s.correlate(pi.Invoice.ID)
	if err != nil {
		return err
	}

	user, err := s.resolveUser(pi.Customer.ID)
	if err != nil {
		return err
	}

	return s.ledger.InTransaction(func(tx Ledger) error {
		applied, err := tx.TransactionByCharge(user.ID, chargeID)
		if err != nil {
			return err
		}
		if applied != nil {
			// Charge already applied; duplicate delivery.
			return nil
		}

		return tx.SettleTransaction(user.ID, corr.publicID, Settlement{
			PaymentID:  pi.ID,
			ChargeID:   chargeID,
			Status:     billing.StatusFailed,
			ReasonCode: reason,
		})
	})
}
