package enums

import "fmt"

// CheckoutMethod is the payment method selected at checkout.
type CheckoutMethod string

const (
	CheckoutMethodCashOnDelivery CheckoutMethod = "cash-on-delivery"
	CheckoutMethodWallet         CheckoutMethod = "pay-on-wallet"
)

var validCheckoutMethods = []CheckoutMethod{
	CheckoutMethodCashOnDelivery,
	CheckoutMethodWallet,
}

// String implements fmt.Stringer.
func (c CheckoutMethod) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutMethod.
func (c CheckoutMethod) IsValid() bool {
	for _, candidate := range validCheckoutMethods {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutMethod converts the raw string to CheckoutMethod.
func ParseCheckoutMethod(value string) (CheckoutMethod, error) {
	for _, candidate := range validCheckoutMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout method %q", value)
}
