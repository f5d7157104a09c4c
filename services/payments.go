package services

import (
	"context"
	"fmt"
	"math"

	models "github.com/phillip/pet-adoption-go/models"
)

// maxIntentCents is the largest amount, in cents, the processor accepts.
const maxIntentCents = 99999999

// PaymentGateway creates a payment intent and returns its client secret.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, intent models.PaymentIntent) (string, error)
}

type PaymentService struct {
	gateway PaymentGateway
}

func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateIntent converts a major-unit amount to cents and asks the processor
// for a card-only USD intent. The amount is not checked against any catalog.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return "", invalid("amount must be greater than 0")
	}
	cents := math.Round(amount * 100)
	if cents < 1 {
		return "", invalid("amount must be at least 0.01")
	}
	if cents > maxIntentCents {
		return "", invalid("amount exceeds the maximum of 999999.99")
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, models.PaymentIntent{
		Amount:             int64(cents),
		Currency:           models.PaymentCurrency,
		PaymentMethodTypes: []string{models.PaymentMethodCard},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}
	return secret, nil
}
