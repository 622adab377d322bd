package address

import "errors"

var (
	errAddressNotFound = errors.New("address not found")
	errAddressExists   = errors.New("address already exists")
)
