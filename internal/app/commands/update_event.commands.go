// internal/app/commands/update_event.commands.go
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
)

type UpdateEventCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	eventRepo      repository.EventStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewUpdateEventCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	eventRepo repository.EventStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *UpdateEventCmd {
	return &UpdateEventCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type UpdateEventParams struct {
	EventID         uuid.UUID
	RequesterUserID uuid.UUID

	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	IsPrivate         bool
	VisibleToStudents bool
	SharedWith        []uuid.UUID
}

func (h *UpdateEventCmd) Handle(ctx context.Context, params UpdateEventParams) (*event.Event, error) {
	if !params.StartTime.Before(params.EndTime) {
		return nil, domainErr.ErrInvalidTimeRange
	}

	ev, err := h.eventRepo.GetEventByID(ctx, params.EventID)
	if err != nil {
		return nil, domainErr.ErrEventNotFound
	}
	targetAgenda, err := h.agendaRepo.GetAgendaByID(ctx, ev.AgendaID)
	if err != nil {
		return nil, domainErr.ErrAgendaNotFound
	}
	requesterMem, _ := h.membershipRepo.GetMember(ctx, params.RequesterUserID, ev.AgendaID)

	if err := policy.CanMutateEvent(policy.ActionUpdateEvent, ev, targetAgenda, params.RequesterUserID, requesterMem); err != nil {
		return nil, err
	}

	// The agenda association and lifecycle status are immutable here;
	// status moves only through the transition command.
	ev.Title = params.Title
	ev.Description = params.Description
	ev.StartTime = params.StartTime
	ev.EndTime = params.EndTime
	ev.IsPrivate = params.IsPrivate
	ev.VisibleToStudents = params.VisibleToStudents
	ev.SharedWith = params.SharedWith
	ev.UpdatedAt = h.now()

	if err := h.eventRepo.UpdateEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.RequesterUserID,
		AgendaID:    &ev.AgendaID,
		Action:      "EVENT_UPDATED",
		TargetID:    &ev.EventID,
		Metadata:    map[string]any{"title": ev.Title},
		CreatedAt:   ev.UpdatedAt,
	}); err != nil {
		log.Printf("update event: audit append failed: %v", err)
	}

	members, err := h.membershipRepo.GetMembersByAgendaID(ctx, ev.AgendaID)
	if err != nil {
		log.Printf("update event: could not load recipients: %v", err)
		return ev, nil
	}
	n := notify.Notification{
		Recipients: agendaRecipients(targetAgenda, members, params.RequesterUserID),
		Type:       notify.TypeEventUpdated,
		Payload: map[string]any{
			"event_id":  ev.EventID,
			"agenda_id": ev.AgendaID,
			"title":     ev.Title,
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("update event: notification failed: %v", err)
	}
	return ev, nil
}
