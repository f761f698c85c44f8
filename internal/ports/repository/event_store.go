// internal/ports/repository/event_store.go
package repository

import (
	"context"
	"time"

	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/google/uuid"
)

type EventStore interface {
	CreateEvent(ctx context.Context, ev *event.Event) error
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*event.Event, error)
	ListEventsByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]*event.Event, error)
	// FindOverlapping returns CONFIRMED events by the same creator in the
	// same agenda whose [start, end) range intersects the candidate range.
	// Touching boundaries are not an overlap.
	FindOverlapping(ctx context.Context, agendaID, creatorID uuid.UUID, start, end time.Time) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, ev *event.Event) error
	// UpdateEventStatus persists ev's status, approval stamp and rejection
	// reason, but only if the row still holds fromStatus at write time.
	// Returns ErrStaleTransition when a concurrent transition won the race.
	UpdateEventStatus(ctx context.Context, ev *event.Event, fromStatus event.Status) error
	DeleteEvent(ctx context.Context, eventID uuid.UUID) error
}
