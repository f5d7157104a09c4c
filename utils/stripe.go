package utils

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	models "github.com/phillip/pet-adoption-go/models"
)

// StripeGateway creates payment intents through the Stripe API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return newStripeGateway(secretKey, "")
}

// newStripeGateway builds a gateway with network retries disabled; a failed
// call is reported to the caller once. apiURL overrides the API host when set.
func newStripeGateway(secretKey, apiURL string) *StripeGateway {
	cfg := &stripe.BackendConfig{MaxNetworkRetries: stripe.Int64(0)}
	if apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
	return &StripeGateway{api: client.New(secretKey, backends)}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, intent models.PaymentIntent) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(intent.Amount),
		Currency:           stripe.String(intent.Currency),
		PaymentMethodTypes: stripe.StringSlice(intent.PaymentMethodTypes),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
