package stripe

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75/webhook"
)

const testSecret = "whsec_test_secret"

func signedHeader(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestConstructEventAcceptsValidSignature(t *testing.T) {
	c := NewClient("sk_test_123", testSecret)
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`)

	event, err := c.ConstructEvent(payload, signedHeader(t, payload, testSecret))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "payment_intent.succeeded", string(event.Type))
}

func TestConstructEventRejectsTamperedBody(t *testing.T) {
	c := NewClient("sk_test_123", testSecret)
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`)
	header := signedHeader(t, payload, testSecret)

	tampered := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"amount":1}}}`)
	_, err := c.ConstructEvent(tampered, header)
	require.Error(t, err)
}

func TestConstructEventRejectsWrongSecret(t *testing.T) {
	c := NewClient("sk_test_123", testSecret)
	payload := []byte(`{"id":"evt_1","object":"event"}`)

	_, err := c.ConstructEvent(payload, signedHeader(t, payload, "whsec_other"))
	require.Error(t, err)
}

func TestConstructEventRejectsMissingHeader(t *testing.T) {
	c := NewClient("sk_test_123", testSecret)

	_, err := c.ConstructEvent([]byte(`{}`), "")
	require.Error(t, err)
}

func TestNormalizeStripeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "none"},
		{in: "active", want: "active"},
		{in: "paid", want: "active"},
		{in: "trialing", want: "trialing"},
		{in: "past_due", want: "past_due"},
		{in: "open", want: "past_due"},
		{in: "void", want: "canceled"},
		{in: "incomplete_expired", want: "canceled"},
		{in: "weird_status", want: "weird_status"},
	}

	for _, tt := range tests {
		if got := NormalizeStripeStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeStripeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
