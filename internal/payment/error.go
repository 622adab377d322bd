package payment

import "errors"

var (
	errPaymentMethodNotFound = errors.New("payment method not found")
	errPaymentMethodExists   = errors.New("payment method already exists")
)
