package account

import "errors"

var (
	errAccountExists      = errors.New("account already exists")
	errAccountNotFound    = errors.New("account not found")
	errInvalidCredentials = errors.New("invalid credentials")
	errWrongPassword      = errors.New("current password is incorrect")
)
