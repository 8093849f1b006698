// Package event defines the outbound notifications handed to the downstream
// notifier. Events are ephemeral: ownership passes to the notifier at
// dispatch and nothing here is persisted.
package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Routing keys for the table-inventory collaborator.
const (
	TableOccupied = "table.occupied"
	TableReleased = "table.released"
)

// Automation event names, as the n8n workflows expect them.
const (
	ReservationCreated   = "reserva.creada"
	ReservationConfirmed = "reserva.confirmada"
	ReservationCancelled = "reserva.cancelada"
)

// TableEvent tells the table service to flip a table's occupancy.
type TableEvent struct {
	Type          string     `json:"type"`
	TableID       uuid.UUID  `json:"tableId"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	UserID        *uuid.UUID `json:"userId,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}

func NewTableOccupied(tableID, reservationID, userID uuid.UUID, at time.Time) TableEvent {
	return TableEvent{
		Type:          TableOccupied,
		TableID:       tableID,
		ReservationID: &reservationID,
		UserID:        &userID,
		Timestamp:     at,
	}
}

func NewTableReleased(tableID uuid.UUID, at time.Time) TableEvent {
	return TableEvent{
		Type:      TableReleased,
		TableID:   tableID,
		Timestamp: at,
	}
}

// AutomationEvent is the envelope posted to each n8n workflow webhook.
type AutomationEvent struct {
	Event     string         `json:"event"`
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
	Metadata  Metadata       `json:"metadata"`
}

type Metadata struct {
	Source        string `json:"source"`
	CorrelationID string `json:"correlation_id"`
	Version       string `json:"version"`
}

func NewAutomationEvent(name string, data map[string]any, correlationID string, at time.Time) AutomationEvent {
	if correlationID == "" {
		correlationID = fmt.Sprintf("corr_%s", uuid.NewString())
	}
	return AutomationEvent{
		Event:     name,
		ID:        fmt.Sprintf("evt_%s", uuid.NewString()),
		Timestamp: at,
		Data:      data,
		Metadata: Metadata{
			Source:        "mesa-reservations",
			CorrelationID: correlationID,
			Version:       "1.0.0",
		},
	}
}
