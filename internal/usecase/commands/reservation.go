package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mesa-reservations/internal/domain/reservation"
	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/pkg/errs"
	"mesa-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationCommand struct {
	IdempotencyKey  string
	RestaurantID    uuid.UUID
	TableID         uuid.UUID
	ReservationDate time.Time
	ReservationTime time.Time
	NumberOfGuests  int
	CustomerName    *string
	Notes           *string
}

// DuplicateError reports that the idempotency key was already seen.
// InFlight distinguishes "another request is still writing" (retry shortly)
// from "already committed" (final, with the existing id).
type DuplicateError struct {
	IdempotencyKey        string
	ExistingReservationID *uuid.UUID
	InFlight              bool
}

func (e *DuplicateError) Error() string {
	if e.InFlight {
		return fmt.Sprintf("idempotency key %q is being processed by another request", e.IdempotencyKey)
	}
	return fmt.Sprintf("idempotency key %q already processed", e.IdempotencyKey)
}

func (e *DuplicateError) Unwrap() error {
	if e.InFlight {
		return errs.ErrReservationInProgress
	}
	return errs.ErrDuplicateReservation
}

type ReservationCommands interface {
	Create(ctx context.Context, cmd CreateReservationCommand, userID uuid.UUID) (*queries.ReservationView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, userID uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	lockStore    LockStore
	repo         ReservationRepository
	notifier     EventNotifier
	writeTimeout time.Duration
}

func NewReservationCommands(
	lockStore LockStore,
	repo ReservationRepository,
	notifier EventNotifier,
	writeTimeout time.Duration,
) ReservationCommands {
	return &reservationCommandsImpl{
		lockStore:    lockStore,
		repo:         repo,
		notifier:     notifier,
		writeTimeout: writeTimeout,
	}
}

// Create runs the check-lock-confirm protocol around the durable insert.
// Exactly one of N concurrent requests sharing a key reaches the insert;
// the rest get a DuplicateError. A failed insert always rolls the lock back
// so a later retry with the same key can acquire it again.
func (r *reservationCommandsImpl) Create(
	ctx context.Context,
	cmd CreateReservationCommand,
	userID uuid.UUID,
) (*queries.ReservationView, error) {
	// Validation happens before any lock is taken: a rejected request must
	// leave no trace.
	if cmd.IdempotencyKey == "" {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	entity, err := r.toDomain(cmd, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	acquire, err := r.lockStore.TryAcquire(ctx, cmd.IdempotencyKey)
	if err != nil {
		// No lock is held on failure, so the caller may retry the same key.
		return nil, errs.Mark(err, errs.ErrLockStoreUnavailable)
	}

	if !acquire.Acquired {
		return nil, &DuplicateError{
			IdempotencyKey:        cmd.IdempotencyKey,
			ExistingReservationID: acquire.ExistingReservationID,
			InFlight:              acquire.ExistingReservationID == nil,
		}
	}

	view, err := r.insertHoldingLock(ctx, cmd.IdempotencyKey, entity)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: the notifier detaches before delivery, so the
	// response never waits on downstream sinks.
	r.notifier.ReservationCreated(view)

	return view, nil
}

func (r *reservationCommandsImpl) insertHoldingLock(
	ctx context.Context,
	key string,
	entity *reservation.Reservation,
) (*queries.ReservationView, error) {
	writeCtx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	view, err := r.repo.Insert(writeCtx, entity)
	if err != nil {
		r.rollbackLock(ctx, key)
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if confirmErr := r.lockStore.Confirm(ctx, key, view.ID); confirmErr != nil {
		// The row is committed; losing the confirmation only narrows the
		// dedup window. Rolling back here would invite a duplicate write.
		slog.Error("failed to confirm idempotency key after commit",
			slog.String("idempotency_key", key),
			slog.String("reservation_id", view.ID.String()),
			slog.String("error", confirmErr.Error()))
	}

	return view, nil
}

// rollbackLock releases the lock after a failed write. It runs on a context
// detached from the request so a caller timeout cannot strand the key as
// LOCKED until TTL expiry.
func (r *reservationCommandsImpl) rollbackLock(ctx context.Context, key string) {
	rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	if err := r.lockStore.Rollback(rollbackCtx, key); err != nil {
		slog.Error("failed to roll back idempotency lock; key stays held until TTL",
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()))
	}
}

// UpdateStatus is a single durable write with no distributed lock, so there
// is no rollback path. Events go out only after the update succeeds.
func (r *reservationCommandsImpl) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status reservation.Status,
	userID uuid.UUID,
) (*queries.ReservationView, error) {
	if !status.IsValid() {
		return nil, errs.ErrInvalidStatus
	}

	current, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, r.mapLookupErr(err)
	}
	if current.UserID != userID {
		// Unauthorized ids look identical to missing ones.
		return nil, errs.ErrReservationNotFound
	}

	writeCtx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	updated, err := r.repo.UpdateStatus(writeCtx, id, status)
	if err != nil {
		return nil, r.mapLookupErr(err)
	}

	switch status {
	case reservation.StatusConfirmed:
		r.notifier.ReservationConfirmed(updated)
	case reservation.StatusCancelled:
		r.notifier.ReservationCancelled(updated)
	case reservation.StatusCompleted:
		r.notifier.ReservationCompleted(updated)
	}

	return updated, nil
}

func (r *reservationCommandsImpl) toDomain(cmd CreateReservationCommand, userID uuid.UUID) (*reservation.Reservation, error) {
	schedule, err := reservation.NewSchedule(cmd.ReservationDate, cmd.ReservationTime)
	if err != nil {
		return nil, err
	}

	guests, err := reservation.NewGuestCount(cmd.NumberOfGuests)
	if err != nil {
		return nil, err
	}

	customerName := reservation.NewNote("")
	if cmd.CustomerName != nil {
		customerName = reservation.NewNote(*cmd.CustomerName)
	}
	notes := reservation.NewNote("")
	if cmd.Notes != nil {
		notes = reservation.NewNote(*cmd.Notes)
	}

	return reservation.NewReservation(userID, cmd.RestaurantID, cmd.TableID, schedule, guests, customerName, notes)
}

func (r *reservationCommandsImpl) mapLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrReservationNotFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
