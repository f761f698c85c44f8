// internal/app/commands/create_event.commands.go
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CreateEventCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	eventRepo      repository.EventStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewCreateEventCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	eventRepo repository.EventStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *CreateEventCmd {
	return &CreateEventCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type CreateEventParams struct {
	AgendaID        uuid.UUID
	RequesterUserID uuid.UUID

	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	IsPrivate         bool
	VisibleToStudents bool
	SharedWith        []uuid.UUID
}

// Handle creates an event after authorization and a creator-scoped
// conflict check. The conflict check is best-effort advisory: two
// simultaneous creations for overlapping slots can both pass it, which
// the design accepts rather than holding a unique constraint.
func (h *CreateEventCmd) Handle(ctx context.Context, params CreateEventParams) (*event.Event, error) {
	if !params.StartTime.Before(params.EndTime) {
		return nil, domainErr.ErrInvalidTimeRange
	}

	// Fetch the agenda and the requester's membership concurrently.
	var (
		targetAgenda *agenda.Agenda
		requesterMem *membership.MemberShip
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a, err := h.agendaRepo.GetAgendaByID(gctx, params.AgendaID)
		if err != nil {
			return domainErr.ErrAgendaNotFound
		}
		targetAgenda = a
		return nil
	})
	group.Go(func() error {
		// No membership row is a valid state; the policy layer decides
		// what it means.
		m, _ := h.membershipRepo.GetMember(gctx, params.RequesterUserID, params.AgendaID)
		requesterMem = m
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := policy.CanCreateEvent(targetAgenda, params.RequesterUserID, requesterMem); err != nil {
		return nil, err
	}
	role, _ := policy.EffectiveRole(targetAgenda, params.RequesterUserID, requesterMem)

	// Only confirmed events by the same creator in the same agenda count
	// as conflicts.
	overlapping, err := h.eventRepo.FindOverlapping(ctx, params.AgendaID, params.RequesterUserID, params.StartTime, params.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check for conflicts: %w", err)
	}
	if len(overlapping) > 0 {
		conflict := &domainErr.ConflictError{}
		for _, ev := range overlapping {
			conflict.Conflicts = append(conflict.Conflicts, domainErr.ConflictingEvent{
				EventID:   ev.EventID,
				Title:     ev.Title,
				StartTime: ev.StartTime,
				EndTime:   ev.EndTime,
			})
		}
		return nil, conflict
	}

	now := h.now()
	ev := &event.Event{
		EventID:           uuid.New(),
		AgendaID:          params.AgendaID,
		CreatorUserID:     params.RequesterUserID,
		Title:             params.Title,
		Description:       params.Description,
		StartTime:         params.StartTime,
		EndTime:           params.EndTime,
		Status:            policy.InitialStatus(targetAgenda, role),
		IsPrivate:         params.IsPrivate,
		VisibleToStudents: params.VisibleToStudents,
		SharedWith:        params.SharedWith,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := h.eventRepo.CreateEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.RequesterUserID,
		AgendaID:    &params.AgendaID,
		Action:      "EVENT_CREATED",
		TargetID:    &ev.EventID,
		Metadata: map[string]any{
			"title":  ev.Title,
			"status": string(ev.Status),
		},
		CreatedAt: now,
	}); err != nil {
		log.Printf("create event: audit append failed: %v", err)
	}

	h.notifyCreated(ctx, targetAgenda, ev)
	return ev, nil
}

// notifyCreated is fire-and-forget: a failed publish never unwinds the
// committed creation.
func (h *CreateEventCmd) notifyCreated(ctx context.Context, a *agenda.Agenda, ev *event.Event) {
	members, err := h.membershipRepo.GetMembersByAgendaID(ctx, a.AgendaID)
	if err != nil {
		log.Printf("create event: could not load recipients: %v", err)
		return
	}
	n := notify.Notification{
		Recipients: agendaRecipients(a, members, ev.CreatorUserID),
		Type:       notify.TypeEventCreated,
		Payload: map[string]any{
			"event_id":   ev.EventID,
			"agenda_id":  a.AgendaID,
			"title":      ev.Title,
			"start_time": ev.StartTime,
			"end_time":   ev.EndTime,
			"status":     string(ev.Status),
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("create event: notification failed: %v", err)
	}
}
