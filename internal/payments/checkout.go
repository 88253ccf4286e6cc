package payments

import (
	"fmt"

	"company-portal/internal/domain/billing"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

type CheckoutRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
	// Amount is accepted for shape compatibility but never trusted; the
	// persisted amount is always the plan's stored amount.
	Amount int64 `json:"amount" binding:"required"`
}

// InitiateCheckout opens a subscription-mode checkout session for the user
// and records a pending transaction. All ledger writes happen in one
// database transaction; a failure after the gateway calls rolls them back
// and leaves the gateway-side session to expire on its own.
func (s *Service) InitiateCheckout(userID uint, req CheckoutRequest) (string, error) {
	if req.PlanID == 0 {
		return "", fmt.Errorf("missing plan_id: %w", ErrValidation)
	}

	var redirectURL string
	err := s.ledger.InTransaction(func(tx Ledger) error {
		user, err := tx.UserByID(userID)
		if err != nil {
			return err
		}

		customerID, err := s.ensureGatewayCustomer(tx, user.ID, user.Email, user.StripeCustomerID)
		if err != nil {
			return err
		}

		plan, err := tx.PlanByID(req.PlanID)
		if err != nil {
			return err
		}

		publicID := uuid.NewString()

		session, err := s.gateway.CreateCheckoutSession(&stripe.CheckoutSessionParams{
			Customer: stripe.String(customerID),
			Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
			LineItems: []*stripe.CheckoutSessionLineItemParams{
				{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
			},
			SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
				Metadata: map[string]string{
					"transaction_public_id": publicID,
				},
			},
			SuccessURL: stripe.String(s.appURL + "/api/payment/success?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:  stripe.String(s.appURL + "/api/payment/cancel"),
		})
		if err != nil {
			return fmt.Errorf("create checkout session: %w", err)
		}

		if err := tx.CreateTransaction(&billing.Transaction{
			TransactionPublicID: publicID,
			UserID:              user.ID,
			PlanID:              plan.ID,
			Amount:              plan.Amount,
			PaymentStatus:       billing.StatusPending,
		}); err != nil {
			return fmt.Errorf("record pending transaction: %w", err)
		}

		// One paid seat verifies the whole company's roster.
		if err := tx.VerifyCompanyUsers(user.CompanyID); err != nil {
			return fmt.Errorf("verify company users: %w", err)
		}

		redirectURL = session.URL
		return nil
	})
	if err != nil {
		return "", err
	}
	return redirectURL, nil
}

// ensureGatewayCustomer lazily creates the gateway-side customer identity
// and persists the 1:1 mapping. The claim only lands while the user has no
// mapping, so when two first checkouts race the loser discards the customer
// it just created and reuses the one the winner stored.
func (s *Service) ensureGatewayCustomer(tx Ledger, userID uint, email string, existing *string) (string, error) {
	if existing != nil && *existing != "" {
		return *existing, nil
	}

	cus, err := s.gateway.CreateCustomer(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create gateway customer: %w", err)
	}

	claimed, err := tx.ClaimStripeCustomerID(userID, cus.ID)
	if err != nil {
		return "", fmt.Errorf("store gateway customer mapping: %w", err)
	}
	if !claimed {
		fresh, err := tx.UserByID(userID)
		if err != nil {
			return "", err
		}
		if fresh.StripeCustomerID == nil || *fresh.StripeCustomerID == "" {
			return "", fmt.Errorf("user %d has no gateway customer after lost claim", userID)
		}
		return *fresh.StripeCustomerID, nil
	}
	return cus.ID, nil
}

// TransactionHistory returns the user's transactions, newest first.
func (s *Service) TransactionHistory(userID uint) ([]billing.Transaction, error) {
	return s.ledger.TransactionsByUser(userID)
}
