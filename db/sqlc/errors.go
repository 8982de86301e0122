package db

import (
	"errors"

	"github.com/lib/pq"
)

const (
	DuplicateEntry       pq.ErrorCode = "23505"
	CheckViolation       pq.ErrorCode = "23514"
	ForeignKeyViolation  pq.ErrorCode = "23503"
	SerializationFailure pq.ErrorCode = "40001"
	DeadlockDetected     pq.ErrorCode = "40P01"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsDuplicate reports a unique-constraint violation (duplicate wallet
// currency, duplicate product slug, ...).
func IsDuplicate(err error) bool {
	return pqCode(err) == DuplicateEntry
}

func IsCheckViolation(err error) bool {
	return pqCode(err) == CheckViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == ForeignKeyViolation
}

// IsRetryable reports a transient transaction abort that is safe to
// retry from the top of the unit of work.
func IsRetryable(err error) bool {
	code := pqCode(err)
	return code == SerializationFailure || code == DeadlockDetected
}
