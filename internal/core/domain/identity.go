package domain

import (
	"errors"
	"fmt"
)

// Role determines which route subtrees an identity may reach.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole converts a string to a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// AccountStatus is the lifecycle state of an account as reported by the
// auth boundary.
type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusPending   AccountStatus = "PENDING"
)

// Identity is the authenticated principal's profile. Role is immutable for
// the lifetime of the session carrying it.
type Identity struct {
	ID     string        `json:"id" bson:"id"`
	Name   string        `json:"name" bson:"name"`
	Email  string        `json:"email" bson:"email"`
	Role   Role          `json:"role" bson:"role"`
	Status AccountStatus `json:"status" bson:"status"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrUnknownRole        = errors.New("unknown role")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrUnavailable        = errors.New("upstream unavailable")
	ErrUpstream           = errors.New("upstream error")
)

// ValidationError reports a request the gateway rejected before any boundary
// call. The reason is safe to surface to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// InvalidInput builds a ValidationError from a reason string.
func InvalidInput(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
