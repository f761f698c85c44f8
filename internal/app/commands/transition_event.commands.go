// internal/app/commands/transition_event.commands.go
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

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

type TransitionEventCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	eventRepo      repository.EventStore
	auditRepo      repository.AuditStore
	tx             repository.TransactionManager
	notifier       notify.Notifier
	now            func() time.Time
}

func NewTransitionEventCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	eventRepo repository.EventStore,
	auditRepo repository.AuditStore,
	tx repository.TransactionManager,
	notifier notify.Notifier,
) *TransitionEventCmd {
	return &TransitionEventCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		auditRepo:      auditRepo,
		tx:             tx,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type TransitionEventParams struct {
	EventID         uuid.UUID
	RequesterUserID uuid.UUID
	Decision        ReviewDecision
	// Reason is optional and only meaningful for rejections; it is
	// propagated to the creator in the notification payload.
	Reason string
}

// Handle drives the approval state machine. The status write is
// conditional on the event still being pending at write time, so two
// concurrent reviews of the same event cannot both succeed; the loser
// gets ErrStaleTransition.
func (h *TransitionEventCmd) Handle(ctx context.Context, params TransitionEventParams) (*event.Event, error) {
	ev, err := h.eventRepo.GetEventByID(ctx, params.EventID)
	if err != nil {
		return nil, domainErr.ErrEventNotFound
	}
	targetAgenda, err := h.agendaRepo.GetAgendaByID(ctx, ev.AgendaID)
	if err != nil {
		return nil, domainErr.ErrAgendaNotFound
	}
	requesterMem, _ := h.membershipRepo.GetMember(ctx, params.RequesterUserID, ev.AgendaID)

	if err := policy.CanReviewEvent(targetAgenda, params.RequesterUserID, requesterMem); err != nil {
		return nil, err
	}

	now := h.now()
	switch params.Decision {
	case DecisionApprove:
		if err := ev.Approve(params.RequesterUserID, now); err != nil {
			return nil, err
		}
	case DecisionReject:
		if err := ev.Reject(params.RequesterUserID, params.Reason, now); err != nil {
			return nil, err
		}
	default:
		return nil, domainErr.ErrInvalidInput
	}

	action := "EVENT_APPROVED"
	if params.Decision == DecisionReject {
		action = "EVENT_REJECTED"
	}

	err = h.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := h.eventRepo.UpdateEventStatus(ctx, ev, event.StatusPendingApproval); err != nil {
			return err
		}
		return h.auditRepo.Append(ctx, &audit.AuditEvent{
			ID:          uuid.New(),
			ActorUserID: &params.RequesterUserID,
			AgendaID:    &ev.AgendaID,
			Action:      action,
			TargetID:    &ev.EventID,
			Metadata: map[string]any{
				"title":  ev.Title,
				"reason": params.Reason,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to transition event: %w", err)
	}

	h.notifyDecision(ctx, targetAgenda.AgendaID, ev, params)
	return ev, nil
}

func (h *TransitionEventCmd) notifyDecision(ctx context.Context, agendaID uuid.UUID, ev *event.Event, params TransitionEventParams) {
	typ := notify.TypeEventApproved
	payload := map[string]any{
		"event_id":  ev.EventID,
		"agenda_id": agendaID,
		"title":     ev.Title,
	}
	if params.Decision == DecisionReject {
		typ = notify.TypeEventRejected
		payload["reason"] = params.Reason
	}
	n := notify.Notification{
		// The decision goes to the creator, not the whole agenda.
		Recipients: []uuid.UUID{ev.CreatorUserID},
		Type:       typ,
		Payload:    payload,
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("transition event: notification failed: %v", err)
	}
}
