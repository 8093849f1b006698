package response

import (
	"time"

	"mesa-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	RestaurantID    uuid.UUID `json:"restaurantId"`
	TableID         uuid.UUID `json:"tableId"`
	ReservationDate string    `json:"reservationDate"`
	ReservationTime time.Time `json:"reservationTime"`
	NumberOfGuests  int32     `json:"numberOfGuests"`
	CustomerName    *string   `json:"customerName,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DuplicateReservationResponse is the 409 body for a replayed idempotency
// key. Retryable marks the in-flight case where a later attempt may succeed.
type DuplicateReservationResponse struct {
	Code                  string     `json:"code"`
	Message               string     `json:"message"`
	IdempotencyKey        string     `json:"idempotencyKey"`
	ExistingReservationID *uuid.UUID `json:"existingReservationId,omitempty"`
	Retryable             bool       `json:"retryable,omitempty"`
}

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	resp.ReservationDate = view.ReservationDate.Format("2006-01-02")
	return &resp, nil
}

func FromReservationViews(views []*queries.ReservationView) ([]*ReservationResponse, error) {
	out := make([]*ReservationResponse, 0, len(views))
	for _, view := range views {
		resp, err := FromReservationView(view)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
