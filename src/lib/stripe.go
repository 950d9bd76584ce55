package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// RetrieveCheckoutSession loads a checkout session by id. Used by the
// verification fallback trigger to recover the order behind a session.
func RetrieveCheckoutSession(sessionId string) (*stripe.CheckoutSession, error) {
	sc := GetStripeClient()
	cs, err := sc.V1CheckoutSessions.Retrieve(context.Background(), sessionId, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		return nil, err
	}
	return cs, nil
}
