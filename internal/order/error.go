package order

import "errors"

var (
	errOrderNotFound   = errors.New("order not found")
	errOrderExists     = errors.New("order already exists")
	errOrderItemExists = errors.New("order already has this product")
	errProductNotFound = errors.New("product not found")
	errCartChanged     = errors.New("cart changed during checkout")
	errStatusChanged   = errors.New("order status changed concurrently")
)
