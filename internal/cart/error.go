package cart

import "errors"

var (
	errCartNotFound     = errors.New("cart not found")
	errCartItemNotFound = errors.New("cart item not found")
	errProductNotFound  = errors.New("product not found")
)
