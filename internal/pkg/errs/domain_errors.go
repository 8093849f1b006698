package errs

import "errors"

// Sentinel errors shared across the command and query layers
var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidStatus       = errors.New("invalid reservation status")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrDuplicateReservation   = errors.New("duplicate reservation")
	ErrReservationInProgress  = errors.New("reservation request in progress")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Infrastructure errors
	ErrLockStoreUnavailable    = errors.New("idempotency store unavailable")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
