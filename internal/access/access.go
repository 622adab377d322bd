// Package access resolves the caller of a request and decides whether it may act on a resource.
//
// Every mutating operation in the domain packages goes through Authorize or RequireAdmin;
// handlers never compare emails or roles themselves.
package access

import (
	"strings"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Caller struct {
	Email string
	Role  string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) Anonymous() bool {
	return c.Email == ""
}

// Authorize allows the owner of a resource and admins.
func Authorize(caller Caller, ownerEmail string) error {
	if caller.Anonymous() {
		return apperror.Unauthorized("authentication required")
	}
	if caller.IsAdmin() {
		return nil
	}
	if ownerEmail != "" && strings.EqualFold(caller.Email, ownerEmail) {
		return nil
	}
	return apperror.Forbidden("not allowed to access another account's resource")
}

func RequireAdmin(caller Caller) error {
	if caller.Anonymous() {
		return apperror.Unauthorized("authentication required")
	}
	if !caller.IsAdmin() {
		return apperror.Forbidden("admin role required")
	}
	return nil
}

func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
