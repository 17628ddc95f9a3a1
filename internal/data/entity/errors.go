package entity

import "errors"

// Error taxonomy for the reservation core. Services wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to HTTP status codes
// with errors.Is. The client-fault / system-fault split must survive all
// wrapping: everything except ErrInternal is caller-attributable.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)
