package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingRestaurant = errors.New("restaurant id is required")
	ErrMissingTable      = errors.New("table id is required")
	ErrMissingUser       = errors.New("user id is required")
)

// Reservation is the aggregate owned by the durable store. The id stays Nil
// until the store assigns one on insert; status transitions after creation
// are caller-driven.
type Reservation struct {
	id           uuid.UUID
	userID       uuid.UUID
	restaurantID uuid.UUID
	tableID      uuid.UUID
	schedule     Schedule
	guests       GuestCount
	customerName Note
	notes        Note
	status       Status
	createdAt    time.Time
}

func NewReservation(
	userID, restaurantID, tableID uuid.UUID,
	schedule Schedule,
	guests GuestCount,
	customerName, notes Note,
) (*Reservation, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if restaurantID == uuid.Nil {
		return nil, ErrMissingRestaurant
	}
	if tableID == uuid.Nil {
		return nil, ErrMissingTable
	}

	return &Reservation{
		userID:       userID,
		restaurantID: restaurantID,
		tableID:      tableID,
		schedule:     schedule,
		guests:       guests,
		customerName: customerName,
		notes:        notes,
		status:       StatusPending,
	}, nil
}

func ReconstructReservation(
	id, userID, restaurantID, tableID uuid.UUID,
	schedule Schedule,
	guests GuestCount,
	customerName, notes Note,
	status Status,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		userID:       userID,
		restaurantID: restaurantID,
		tableID:      tableID,
		schedule:     schedule,
		guests:       guests,
		customerName: customerName,
		notes:        notes,
		status:       status,
		createdAt:    createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) RestaurantID() uuid.UUID { return r.restaurantID }
func (r *Reservation) TableID() uuid.UUID      { return r.tableID }
func (r *Reservation) Schedule() Schedule      { return r.schedule }
func (r *Reservation) Guests() GuestCount      { return r.guests }
func (r *Reservation) CustomerName() Note      { return r.customerName }
func (r *Reservation) Notes() Note             { return r.notes }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }

func (r *Reservation) IsLive() bool {
	return r.status.IsLive()
}
