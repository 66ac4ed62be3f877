// Package apperr holds the error taxonomy shared by HTTP controllers
// and the websocket layer. Services wrap these sentinels with context;
// boundaries map them to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrUpstreamPayment   = errors.New("payment provider error")
)
