package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Auth errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailInUse     = errors.New("email already in use")
	ErrInvalidCode    = errors.New("invalid or expired verification code")
	ErrInvalidRole    = errors.New("invalid role")
)

// Operations errors
var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrPeriodNotFound  = errors.New("period not found")
	ErrPolicyNotFound  = errors.New("insurance policy not found")
	ErrPartNotFound    = errors.New("spare part not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidPeriod   = errors.New("invalid period format")
)
