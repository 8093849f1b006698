package request

import (
	"time"

	"mesa-reservations/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	IdempotencyKey  string    `json:"idempotencyKey" binding:"required"`
	RestaurantID    uuid.UUID `json:"restaurantId" binding:"required"`
	TableID         uuid.UUID `json:"tableId" binding:"required"`
	ReservationDate string    `json:"reservationDate" binding:"required,datetime=2006-01-02"`
	ReservationTime time.Time `json:"reservationTime" binding:"required"`
	NumberOfGuests  int       `json:"numberOfGuests" binding:"required,min=1,max=20"`
	CustomerName    *string   `json:"customerName,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

func (r CreateReservationRequest) ToCommand() (commands.CreateReservationCommand, error) {
	date, err := time.ParseInLocation("2006-01-02", r.ReservationDate, time.UTC)
	if err != nil {
		return commands.CreateReservationCommand{}, err
	}

	return commands.CreateReservationCommand{
		IdempotencyKey:  r.IdempotencyKey,
		RestaurantID:    r.RestaurantID,
		TableID:         r.TableID,
		ReservationDate: date,
		ReservationTime: r.ReservationTime,
		NumberOfGuests:  r.NumberOfGuests,
		CustomerName:    r.CustomerName,
		Notes:           r.Notes,
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
