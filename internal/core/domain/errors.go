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
	ErrInvalidTransition  = errors.New("status transition not allowed")
)

// Ledger errors
var (
	ErrInsufficientBalance = errors.New("cashout amount exceeds commission balance")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
)

// Subscription errors
var (
	ErrSubscriptionInactive = errors.New("an active subscription is required")
)
