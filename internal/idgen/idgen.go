// Package idgen issues string identifiers for entities without a natural key.
//
// Identifiers are never regenerated on collision: a duplicate reaches the primary key
// constraint and is reported to the caller as a conflict.
package idgen

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	Category      = "CAT"
	Product       = "PROD"
	Cart          = "CART"
	Order         = "ORD"
	Address       = "ADDR"
	PaymentMethod = "PM"
)

var (
	ErrInvalidID = errors.New("identifier must be 1-64 characters of letters, digits, '-' or '_'")

	validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Resolve keeps a valid caller-supplied identifier, otherwise it issues a new one.
func Resolve(prefix, supplied string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return New(prefix), nil
	}
	if !validID.MatchString(supplied) {
		return "", ErrInvalidID
	}
	return supplied, nil
}
