package servicerror

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the API layer can map it to a
// transport status without inspecting message text. Store-level errors
// (raw pq errors and friends) must be translated to one of these before
// they leave a service package.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInvalidArgument     Kind = "invalid_argument"
	KindInvalidState        Kind = "invalid_state"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInsufficientBalance Kind = "insufficient_balance"
	KindForbidden           Kind = "forbidden"
	KindDuplicate           Kind = "duplicate"
	KindConflict            Kind = "conflict"
	KindInternal            Kind = "internal"
)

type ServiceError struct {
	Kind     Kind
	Resource string
	Message  string

	// Required/Available carry the numeric shortfall for the two
	// insufficiency kinds, so clients can render actionable messages.
	Required  int64
	Available int64

	// Err is the wrapped cause. It is logged, never serialized.
	Err error
}

func (e *ServiceError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s", e.Resource, e.Message)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func New(kind Kind, resource, message string) *ServiceError {
	return &ServiceError{Kind: kind, Resource: resource, Message: message}
}

func NotFound(resource string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Resource: resource, Message: fmt.Sprintf("%s not found", resource)}
}

func InvalidArgument(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidArgument, Message: message}
}

func InvalidState(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidState, Message: message}
}

func Forbidden(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func Duplicate(resource, message string) *ServiceError {
	return &ServiceError{Kind: KindDuplicate, Resource: resource, Message: message}
}

func Conflict(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func InsufficientBalance(required, available int64) *ServiceError {
	return &ServiceError{
		Kind:      KindInsufficientBalance,
		Resource:  "wallet",
		Message:   fmt.Sprintf("insufficient balance: required %d, available %d", required, available),
		Required:  required,
		Available: available,
	}
}

func InsufficientStock(product string, required, available int64) *ServiceError {
	return &ServiceError{
		Kind:      KindInsufficientStock,
		Resource:  product,
		Message:   fmt.Sprintf("insufficient stock for %s: required %d, available %d", product, required, available),
		Required:  required,
		Available: available,
	}
}

// Internal wraps an unexpected error without leaking store detail to
// callers; the cause stays available for logging via Unwrap.
func Internal(err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: "an internal error occurred", Err: err}
}

// KindOf extracts the Kind from an error chain, or KindInternal when
// the error was never classified.
func KindOf(err error) Kind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// AsServiceError is a convenience for tests and handlers that need the
// structured fields.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	ok := errors.As(err, &se)
	return se, ok
}
