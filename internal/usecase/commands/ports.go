package commands

import (
	"context"

	"mesa-reservations/internal/domain/reservation"
	"mesa-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

// AcquireResult is the outcome of one atomic check-and-lock attempt.
// Acquired means this caller holds the lock and must confirm or roll back.
// Otherwise ExistingReservationID carries the committed result, or is nil
// while another holder's write is still in flight.
type AcquireResult struct {
	Acquired              bool
	ExistingReservationID *uuid.UUID
}

// LockStore coordinates at-most-once creation across concurrent handlers.
// Entries expire on their own after the configured TTL, in every state.
type LockStore interface {
	TryAcquire(ctx context.Context, key string) (AcquireResult, error)
	Confirm(ctx context.Context, key string, reservationID uuid.UUID) error
	Rollback(ctx context.Context, key string) error
}

// ReservationRepository is the write-side durable store. It holds no
// idempotency logic; duplicate prevention is entirely the coordinator's job.
type ReservationRepository interface {
	Insert(ctx context.Context, res *reservation.Reservation) (*queries.ReservationView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) (*queries.ReservationView, error)
}

// EventNotifier fans domain events out to the table service and the
// automation sinks. Calls return immediately; delivery is best-effort and
// failures never reach the caller.
type EventNotifier interface {
	ReservationCreated(view *queries.ReservationView)
	ReservationConfirmed(view *queries.ReservationView)
	ReservationCancelled(view *queries.ReservationView)
	ReservationCompleted(view *queries.ReservationView)
}
