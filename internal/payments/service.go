package payments

// Service orchestrates checkout initiation, webhook reconciliation and the
// read-only success path against an injected Ledger and Gateway.
type Service struct {
	ledger  Ledger
	gateway Gateway
	appURL  string
}

func NewService(ledger Ledger, gateway Gateway, appURL string) *Service {
	return &Service{ledger: ledger, gateway: gateway, appURL: appURL}
}
