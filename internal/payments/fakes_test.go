package payments

import (
	"errors"
	"fmt"
	"time"

	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/plans"
	"company-portal/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// fakeLedger is an in-memory Ledger whose InTransaction snapshots state and
// restores it when the unit of work fails, mirroring a database rollback.
type fakeLedger struct {
	users         map[uint]users.User
	plans         map[uint]plans.Plan
	transactions  []billing.Transaction
	subscriptions []billing.UserSubscription

	verifiedCompanies []uint
	verifyErr         error
	createTxnErr      error

	calls int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		users: map[uint]users.User{},
		plans: map[uint]plans.Plan{},
	}
}

func (l *fakeLedger) snapshot() *fakeLedger {
	cp := &fakeLedger{
		users:             make(map[uint]users.User, len(l.users)),
		plans:             make(map[uint]plans.Plan, len(l.plans)),
		transactions:      append([]billing.Transaction(nil), l.transactions...),
		subscriptions:     append([]billing.UserSubscription(nil), l.subscriptions...),
		verifiedCompanies: append([]uint(nil), l.verifiedCompanies...),
	}
	for id, u := range l.users {
		cp.users[id] = u
	}
	for id, p := range l.plans {
		cp.plans[id] = p
	}
	return cp
}

func (l *fakeLedger) restore(s *fakeLedger) {
	l.users = s.users
	l.plans = s.plans
	l.transactions = s.transactions
	l.subscriptions = s.subscriptions
	l.verifiedCompanies = s.verifiedCompanies
}

func (l *fakeLedger) InTransaction(fn func(tx Ledger) error) error {
	l.calls++
	before := l.snapshot()
	if err := fn(l); err != nil {
		l.restore(before)
		return err
	}
	return nil
}

func (l *fakeLedger) UserByID(id uint) (*users.User, error) {
	l.calls++
	u, ok := l.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (l *fakeLedger) UserByStripeCustomer(customerID string) (*users.User, error) {
	l.calls++
	for _, u := range l.users {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user for stripe customer %s: %w", customerID, ErrNotFound)
}

func (l *fakeLedger) ClaimStripeCustomerID(userID uint, customerID string) (bool, error) {
	l.calls++
	u, ok := l.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	if u.StripeCustomerID != nil && *u.StripeCustomerID != "" {
		return false, nil
	}
	u.StripeCustomerID = &customerID
	l.users[userID] = u
	return true, nil
}

func (l *fakeLedger) VerifyCompanyUsers(companyID uint) error {
	l.calls++
	if l.verifyErr != nil {
		return l.verifyErr
	}
	for id, u := range l.users {
		if u.CompanyID == companyID {
			u.IsVerified = true
			l.users[id] = u
		}
	}
	l.verifiedCompanies = append(l.verifiedCompanies, companyID)
	return nil
}

func (l *fakeLedger) PlanByID(id uint) (*plans.Plan, error) {
	l.calls++
	p, ok := l.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (l *fakeLedger) CreateTransaction(txn *billing.Transaction) error {
	l.calls++
	if l.createTxnErr != nil {
		return l.createTxnErr
	}
	txn.ID = uint(len(l.transactions) + 1)
	txn.CreatedAt = time.Now()
	l.transactions = append(l.transactions, *txn)
	return nil
}

func (l *fakeLedger) TransactionByPublicID(userID uint, publicID string) (*billing.Transaction, error) {
	l.calls++
	for _, t := range l.transactions {
		if t.UserID == userID && t.TransactionPublicID == publicID {
			t := t
			return &t, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", publicID, ErrNotFound)
}

func (l *fakeLedger) TransactionByCharge(userID uint, chargeID string) (*billing.Transaction, error) {
	l.calls++
	for _, t := range l.transactions {
		if t.UserID == userID && t.StripeChargeID != nil && *t.StripeChargeID == chargeID {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (l *fakeLedger) TransactionsByUser(userID uint) ([]billing.Transaction, error) {
	l.calls++
	var out []billing.Transaction
	for _, t := range l.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (l *fakeLedger) SettleTransaction(userID uint, publicID string, s Settlement) error {
	l.calls++
	for i, t := range l.transactions {
		if t.UserID == userID && t.TransactionPublicID == publicID {
			t.StripePaymentID = &s.PaymentID
			t.StripeChargeID = &s.ChargeID
			t.PaymentStatus = s.Status
			t.PaymentReasonCode = &s.ReasonCode
			l.transactions[i] = t
			return nil
		}
	}
	return fmt.Errorf("settle transaction %s: %w", publicID, ErrNotFound)
}

func (l *fakeLedger) CreateSubscriptionIfAbsent(sub *billing.UserSubscription) (bool, error) {
	l.calls++
	for _, s := range l.subscriptions {
		if s.UserID == sub.UserID && s.StripeChargeID == sub.StripeChargeID {
			return false, nil
		}
	}
	sub.ID = uint(len(l.subscriptions) + 1)
	sub.CreatedAt = time.Now()
	l.subscriptions = append(l.subscriptions, *sub)
	return true, nil
}


// fakeGateway captures params and serves canned gateway objects.
type fakeGateway struct {
	customersCreated   int
	lastCustomerParams *stripe.CustomerParams
	lastSessionParams  *stripe.CheckoutSessionParams

	sessions      map[string]*stripe.CheckoutSession
	invoices      map[string]*stripe.Invoice
	subscriptions map[string]*stripe.Subscription

	createCustomerErr error
	createSessionErr  error
	invoiceErr        error
	subscriptionErr   error
	customerErr       error

	event    stripe.Event
	eventErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sessions:      map[string]*stripe.CheckoutSession{},
		invoices:      map[string]*stripe.Invoice{},
		subscriptions: map[string]*stripe.Subscription{},
	}
}

func (g *fakeGateway) CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	if g.createCustomerErr != nil {
		return nil, g.createCustomerErr
	}
	g.customersCreated++
	g.lastCustomerParams = params
	return &stripe.Customer{ID: fmt.Sprintf("cus_fake_%d", g.customersCreated)}, nil
}

func (g *fakeGateway) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if g.createSessionErr != nil {
		return nil, g.createSessionErr
	}
	g.lastSessionParams = params
	return &stripe.CheckoutSession{ID: "cs_fake_1", URL: "https://checkout.example/cs_fake_1"}, nil
}

func (g *fakeGateway) CheckoutSession(id string) (*stripe.CheckoutSession, error) {
	s, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such checkout session")
	}
	return s, nil
}

func (g *fakeGateway) Invoice(id string) (*stripe.Invoice, error) {
	if g.invoiceErr != nil {
		return nil, g.invoiceErr
	}
	inv, ok := g.invoices[id]
	if !ok {
		return nil, errors.New("no such invoice")
	}
	return inv, nil
}

func (g *fakeGateway) Subscription(id string) (*stripe.Subscription, error) {
	if g.subscriptionErr != nil {
		return nil, g.subscriptionErr
	}
	sub, ok := g.subscriptions[id]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	return sub, nil
}

func (g *fakeGateway) Customer(id string) (*stripe.Customer, error) {
	if g.customerErr != nil {
		return nil, g.customerErr
	}
	return &stripe.Customer{ID: id}, nil
}

func (g *fakeGateway) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if g.eventErr != nil {
		return stripe.Event{}, g.eventErr
	}
	return g.event, nil
}
