// internal/app/queries/list_events.queries.go
package queries

import (
	"context"
	"fmt"

	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
)

type ListEventsQuery struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	eventRepo      repository.EventStore
}

func NewListEventsQuery(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	eventRepo repository.EventStore,
) *ListEventsQuery {
	return &ListEventsQuery{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
	}
}

type ListEventsParams struct {
	AgendaID     uuid.UUID
	ViewerUserID uuid.UUID
}

// Handle returns the events of an agenda the viewer is allowed to see.
// Privacy is per-event, so the resolver runs on every event in the
// result; it is never pushed down into the query itself.
func (q *ListEventsQuery) Handle(ctx context.Context, params ListEventsParams) ([]*event.Event, error) {
	targetAgenda, err := q.agendaRepo.GetAgendaByID(ctx, params.AgendaID)
	if err != nil {
		return nil, domainErr.ErrAgendaNotFound
	}
	viewerMem, _ := q.membershipRepo.GetMember(ctx, params.ViewerUserID, params.AgendaID)

	all, err := q.eventRepo.ListEventsByAgendaID(ctx, params.AgendaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	visible := make([]*event.Event, 0, len(all))
	for _, ev := range all {
		if policy.IsVisible(ev, targetAgenda, params.ViewerUserID, viewerMem) {
			visible = append(visible, ev)
		}
	}
	return visible, nil
}
