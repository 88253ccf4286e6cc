package payments

import (
	"fmt"

	"company-portal/internal/domain/billing"
)

// SuccessResult is what the post-checkout landing page displays.
type SuccessResult struct {
	PaymentStatus string                `json:"payment_status"`
	UserID        uint                  `json:"user_id"`
	Email         string                `json:"email"`
	Transactions  []billing.Transaction `json:"transactions"`
}

// ResolveSuccess maps a completed checkout session back to the local user
// and returns their transaction history. Strictly read-only: state changes
// only ever come from webhook reconciliation, so refreshing the success
// page has no side effects.
func (s *Service) ResolveSuccess(sessionID string) (*SuccessResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing session_id: %w", ErrValidation)
	}

	session, err := s.gateway.CheckoutSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session %s: %w", sessionID, err)
	}
	if session.Customer == nil || session.Customer.ID == "" {
		return nil, fmt.Errorf("session %s has no customer: %w", sessionID, ErrNotFound)
	}

	user, err := s.ledger.UserByStripeCustomer(session.Customer.ID)
	if err != nil {
		return nil, err
	}

	txns, err := s.ledger.TransactionsByUser(user.ID)
	if err != nil {
		return nil, err
	}

	return &SuccessResult{
		PaymentStatus: string(session.PaymentStatus),
		UserID:        user.ID,
		Email:         user.Email,
		Transactions:  txns,
	}, nil
}
