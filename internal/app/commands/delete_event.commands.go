// internal/app/commands/delete_event.commands.go
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
)

type DeleteEventCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	eventRepo      repository.EventStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewDeleteEventCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	eventRepo repository.EventStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *DeleteEventCmd {
	return &DeleteEventCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type DeleteEventParams struct {
	EventID         uuid.UUID
	RequesterUserID uuid.UUID
}

// Handle deletes an event. Deletion is an ordinary permission-gated
// action, not a lifecycle transition; it is legal in any status for
// whoever the evaluator allows.
func (h *DeleteEventCmd) Handle(ctx context.Context, params DeleteEventParams) error {
	ev, err := h.eventRepo.GetEventByID(ctx, params.EventID)
	if err != nil {
		return domainErr.ErrEventNotFound
	}
	targetAgenda, err := h.agendaRepo.GetAgendaByID(ctx, ev.AgendaID)
	if err != nil {
		return domainErr.ErrAgendaNotFound
	}
	requesterMem, _ := h.membershipRepo.GetMember(ctx, params.RequesterUserID, ev.AgendaID)

	if err := policy.CanMutateEvent(policy.ActionDeleteEvent, ev, targetAgenda, params.RequesterUserID, requesterMem); err != nil {
		return err
	}

	if err := h.eventRepo.DeleteEvent(ctx, ev.EventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.RequesterUserID,
		AgendaID:    &ev.AgendaID,
		Action:      "EVENT_DELETED",
		TargetID:    &ev.EventID,
		Metadata:    map[string]any{"title": ev.Title},
		CreatedAt:   h.now(),
	}); err != nil {
		log.Printf("delete event: audit append failed: %v", err)
	}

	members, err := h.membershipRepo.GetMembersByAgendaID(ctx, ev.AgendaID)
	if err != nil {
		log.Printf("delete event: could not load recipients: %v", err)
		return nil
	}
	n := notify.Notification{
		Recipients: agendaRecipients(targetAgenda, members, params.RequesterUserID),
		Type:       notify.TypeEventDeleted,
		Payload: map[string]any{
			"event_id":  ev.EventID,
			"agenda_id": ev.AgendaID,
			"title":     ev.Title,
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("delete event: notification failed: %v", err)
	}
	return nil
}
