package app

import "errors"

// Ack errors returned to the sending connection. The error text is the
// user-visible failure reason; other room members never see it.
var (
	ErrInvalidData   = errors.New("invalid data")
	ErrMessageLength = errors.New("message length invalid")
	ErrRateLimited   = errors.New("rate limit exceeded")
)
