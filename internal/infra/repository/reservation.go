package repository

import (
	"context"
	"errors"
	"time"

	"mesa-reservations/internal/domain/reservation"
	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `
	id, user_id, restaurant_id, table_id,
	reservation_date, reservation_time, number_of_guests,
	customer_name, notes, status, created_at`

// ReservationRepository is the single durable store for reservations. It
// serves both the write side and the read side; duplicate prevention lives
// in the lock store, not here.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (*queries.ReservationView, error) {
	const stmt = `
INSERT INTO reservations (
	user_id, restaurant_id, table_id,
	reservation_date, reservation_time, number_of_guests,
	customer_name, notes, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING` + reservationColumns

	row := r.pool.QueryRow(ctx, stmt,
		res.UserID(),
		res.RestaurantID(),
		res.TableID(),
		res.Schedule().Date(),
		res.Schedule().At(),
		int32(res.Guests().Int()),
		noteToPtr(res.CustomerName()),
		noteToPtr(res.Notes()),
		string(res.Status()),
	)

	view, err := scanReservation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to insert reservation", err)
	}

	return view, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1`

	view, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	return view, nil
}

func (r *ReservationRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*queries.ReservationView, error) {
	const query = `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1 AND user_id = $2`

	view, err := scanReservation(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	return view, nil
}

func (r *ReservationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	const query = `
SELECT` + reservationColumns + `
FROM reservations
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user reservations", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// FindByTableAndDate returns only rows that still occupy the table; cancelled
// and rejected reservations are excluded at the query level.
func (r *ReservationRepository) FindByTableAndDate(ctx context.Context, tableID uuid.UUID, date time.Time) ([]*queries.ReservationView, error) {
	const query = `
SELECT` + reservationColumns + `
FROM reservations
WHERE table_id = $1
  AND reservation_date = $2
  AND status NOT IN ($3, $4)
ORDER BY reservation_time ASC`

	rows, err := r.pool.Query(ctx, query, tableID, date,
		string(reservation.StatusCancelled), string(reservation.StatusRejected))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list table reservations", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) (*queries.ReservationView, error) {
	const stmt = `
UPDATE reservations
SET status = $2
WHERE id = $1
RETURNING` + reservationColumns

	view, err := scanReservation(r.pool.QueryRow(ctx, stmt, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation status", err)
	}

	return view, nil
}

func scanReservation(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(
		&v.ID, &v.UserID, &v.RestaurantID, &v.TableID,
		&v.ReservationDate, &v.ReservationTime, &v.NumberOfGuests,
		&v.CustomerName, &v.Notes, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectReservations(rows pgx.Rows) ([]*queries.ReservationView, error) {
	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return views, nil
}

func noteToPtr(n reservation.Note) *string {
	if n.IsEmpty() {
		return nil
	}
	s := n.String()
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
