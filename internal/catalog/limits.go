package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

// MaxQuantity caps the units of one product on a cart line or an order line.
const MaxQuantity = 10000

// Price and total columns are decimal(12,2).
const amountScale = 2

var maxAmount = decimal.New(1, 10)

func ValidateQuantity(quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return apperror.Validationf("quantity must be between 1 and %d", MaxQuantity)
	}
	return nil
}

// ValidatePrice accepts non-negative amounts with at most two decimal places.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	if !price.Equal(price.Round(amountScale)) {
		return apperror.Validationf("price must have at most %d decimal places", amountScale)
	}
	if !AmountFits(price) {
		return apperror.Validationf("price must be below %s", maxAmount.String())
	}
	return nil
}

func AmountFits(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(maxAmount)
}
