package service

import "errors"

var (
	// ErrOrderExists means the identifier is already taken by another order.
	ErrOrderExists = errors.New("order already exists")

	// ErrCodeExhausted means the generator could not find an unused secret
	// code within its attempt limit. Callers should retry the whole
	// operation rather than resubmit the same input.
	ErrCodeExhausted = errors.New("could not generate unique code")

	// ErrInvalidSignature means Razorpay payment verification failed.
	ErrInvalidSignature = errors.New("payment signature verification failed")
)

// ValidationError marks malformed or out-of-bounds input rejected before any
// mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// CredentialError carries the provider's error detail from a failed seller
// credential test.
type CredentialError struct {
	Detail string
}

func (e *CredentialError) Error() string {
	return "credential test failed: " + e.Detail
}
