package stripe

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
	"github.com/stripe/stripe-go/v75/price"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Client wraps the Stripe API behind one value constructed at process start,
// so business code never reads keys from the environment itself.
type Client struct {
	api           *client.API
	webhookSecret string
}

func NewClient(secretKey, webhookSecret string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, webhookSecret: webhookSecret}
}

func (c *Client) CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	return c.api.Customers.New(params)
}

func (c *Client) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c *Client) CheckoutSession(id string) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.Get(id, nil)
}

func (c *Client) Invoice(id string) (*stripe.Invoice, error) {
	return c.api.Invoices.Get(id, nil)
}

func (c *Client) Subscription(id string) (*stripe.Subscription, error) {
	return c.api.Subscriptions.Get(id, nil)
}

func (c *Client) Customer(id string) (*stripe.Customer, error) {
	return c.api.Customers.Get(id, nil)
}

// Prices lists recurring prices for the admin plan sync.
func (c *Client) Prices(params *stripe.PriceListParams) *price.Iter {
	return c.api.Prices.List(params)
}

// ConstructEvent verifies the webhook signature against the exact bytes the
// gateway signed and parses the event envelope.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
}
