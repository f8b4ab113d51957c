package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrAssignorNotFound  = errors.New("assignor not found")
	ErrAssignorExists    = errors.New("assignor already exists")
	ErrAssignorInUse     = errors.New("assignor is referenced by payables")
	ErrAssignorReference = errors.New("assignorId does not reference an existing assignor")

	ErrPayableNotFound = errors.New("payable not found")
	ErrPayableExists   = errors.New("payable already exists")
)
