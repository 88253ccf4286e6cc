package stripe

import "strings"

// Stripe-ish normalization used ONLY for subscription status display
func NormalizeStripeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active", "paid":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid", "open":
		return "past_due"
	case "canceled", "incomplete_expired", "void":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
