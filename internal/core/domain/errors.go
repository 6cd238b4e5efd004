package domain

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("expense store unavailable")
	ErrInternalServer   = errors.New("internal server error")
)

// Expense errors
var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrNoExpenseCreated = errors.New("store returned no expense id")
)

// Chat errors
var (
	ErrChatNotConfigured = errors.New("chat is not configured")
	ErrUnknownTool       = errors.New("unknown function")
)
