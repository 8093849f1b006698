package notifier

import (
	"context"
	"log/slog"

	"mesa-reservations/internal/domain/event"
	"mesa-reservations/internal/pkg/clock"
	"mesa-reservations/internal/usecase/commands"
	"mesa-reservations/internal/usecase/queries"
)

type TablePublisher interface {
	Publish(ctx context.Context, ev event.TableEvent) error
}

type AutomationEmitter interface {
	Emit(ctx context.Context, ev event.AutomationEvent)
}

// EventNotifier fans reservation lifecycle events out to the table service
// and the automation webhooks. Every method hands its work to the dispatcher
// and returns immediately; a dead broker or webhook slows nothing down.
type EventNotifier struct {
	dispatcher *Dispatcher
	tables     TablePublisher
	automation AutomationEmitter
	clock      clock.Clock
}

var _ commands.EventNotifier = (*EventNotifier)(nil)

func NewEventNotifier(
	dispatcher *Dispatcher,
	tables TablePublisher,
	automation AutomationEmitter,
	clk clock.Clock,
) *EventNotifier {
	return &EventNotifier{
		dispatcher: dispatcher,
		tables:     tables,
		automation: automation,
		clock:      clk,
	}
}

func (n *EventNotifier) ReservationCreated(view *queries.ReservationView) {
	occupied := event.NewTableOccupied(view.TableID, view.ID, view.UserID, n.clock.Now())
	n.publishTable(occupied)
	n.emitAutomation(event.ReservationCreated, view)
}

func (n *EventNotifier) ReservationConfirmed(view *queries.ReservationView) {
	n.emitAutomation(event.ReservationConfirmed, view)
}

func (n *EventNotifier) ReservationCancelled(view *queries.ReservationView) {
	n.publishTable(event.NewTableReleased(view.TableID, n.clock.Now()))
	n.emitAutomation(event.ReservationCancelled, view)
}

// ReservationCompleted frees the table but triggers no automation; the
// workflows only care about guest-facing transitions.
func (n *EventNotifier) ReservationCompleted(view *queries.ReservationView) {
	n.publishTable(event.NewTableReleased(view.TableID, n.clock.Now()))
}

func (n *EventNotifier) publishTable(ev event.TableEvent) {
	n.dispatcher.Submit(ev.Type, func(ctx context.Context) {
		if err := n.tables.Publish(ctx, ev); err != nil {
			slog.Warn("table event delivery failed",
				slog.String("event", ev.Type),
				slog.String("table_id", ev.TableID.String()),
				slog.String("error", err.Error()))
		}
	})
}

func (n *EventNotifier) emitAutomation(name string, view *queries.ReservationView) {
	ev := event.NewAutomationEvent(name, automationData(view), "", n.clock.Now())
	n.dispatcher.Submit(name, func(ctx context.Context) {
		n.automation.Emit(ctx, ev)
	})
}

func automationData(view *queries.ReservationView) map[string]any {
	data := map[string]any{
		"reservationId":   view.ID.String(),
		"userId":          view.UserID.String(),
		"restaurantId":    view.RestaurantID.String(),
		"tableId":         view.TableID.String(),
		"reservationDate": view.ReservationDate.Format("2006-01-02"),
		"reservationTime": view.ReservationTime,
		"numberOfGuests":  view.NumberOfGuests,
		"status":          view.Status,
	}
	if view.CustomerName != nil {
		data["customerName"] = *view.CustomerName
	}
	if view.Notes != nil {
		data["notes"] = *view.Notes
	}
	return data
}
