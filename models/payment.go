package models

const (
	PaymentCurrency   = "usd"
	PaymentMethodCard = "card"
)

// PaymentIntent is what the server asks the processor for. Amount is in
// minor currency units.
type PaymentIntent struct {
	Amount             int64
	Currency           string
	PaymentMethodTypes []string
}
