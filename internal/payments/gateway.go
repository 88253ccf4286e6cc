package payments

import (
	"github.com/stripe/stripe-go/v75"
)

// Gateway is the slice of the Stripe API the payment core depends on. It is
// injected once at startup; nothing in this package reads keys or globals.
type Gateway interface {
	CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error)
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	CheckoutSession(id string) (*stripe.CheckoutSession, error)
	Invoice(id string) (*stripe.Invoice, error)
	Subscription(id string) (*stripe.Subscription, error)
	Customer(id string) (*stripe.Customer, error)
	ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error)
}
