package store

import "errors"

// Sentinel errors shared by store implementations. They are wrapped into
// application errors before they reach a handler.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrConflict  = errors.New("conflict")
	ErrCartEmpty = errors.New("cart is empty")
)
