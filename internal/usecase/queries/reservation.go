package queries

import (
	"context"
	"time"

	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReservationView is the read model returned to callers. Dates are UTC.
type ReservationView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	RestaurantID    uuid.UUID `json:"restaurantId"`
	TableID         uuid.UUID `json:"tableId"`
	ReservationDate time.Time `json:"reservationDate"`
	ReservationTime time.Time `json:"reservationTime"`
	NumberOfGuests  int32     `json:"numberOfGuests"`
	CustomerName    *string   `json:"customerName,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ReservationReadStore interface {
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	FindByTableAndDate(ctx context.Context, tableID uuid.UUID, date time.Time) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error)
	ListUserReservations(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	ListTableReservations(ctx context.Context, tableID uuid.UUID, date time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}

	return view, nil
}

func (q *reservationQueriesImpl) ListUserReservations(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.readStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user reservations")
	}

	return views, nil
}

// ListTableReservations returns only live rows (CANCELLED and REJECTED are
// filtered by the store) since only those count toward conflict checks.
func (q *reservationQueriesImpl) ListTableReservations(ctx context.Context, tableID uuid.UUID, date time.Time) ([]*ReservationView, error) {
	views, err := q.readStore.FindByTableAndDate(ctx, tableID, date)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list table reservations")
	}

	return views, nil
}
