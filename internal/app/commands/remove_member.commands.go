// internal/app/commands/remove_member.commands.go
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

type RemoveMemberCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewRemoveMemberCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *RemoveMemberCmd {
	return &RemoveMemberCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type RemoveMemberParams struct {
	AgendaID        uuid.UUID
	RequesterUserID uuid.UUID
	TargetUserID    uuid.UUID
}

func (h *RemoveMemberCmd) Handle(ctx context.Context, params RemoveMemberParams) error {
	targetAgenda, err := h.agendaRepo.GetAgendaByID(ctx, params.AgendaID)
	if err != nil {
		return domainErr.ErrAgendaNotFound
	}
	target, err := h.membershipRepo.GetMember(ctx, params.TargetUserID, params.AgendaID)
	if err != nil {
		return domainErr.ErrMembershipNotFound
	}
	requesterMem, _ := h.membershipRepo.GetMember(ctx, params.RequesterUserID, params.AgendaID)

	if err := policy.CanRemoveMember(targetAgenda, params.RequesterUserID, requesterMem, target); err != nil {
		return err
	}

	if err := h.membershipRepo.DeleteMembership(ctx, params.TargetUserID, params.AgendaID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.RequesterUserID,
		AgendaID:    &params.AgendaID,
		Action:      "MEMBER_REMOVED",
		TargetID:    &params.TargetUserID,
		Metadata:    map[string]any{"role": string(target.Role)},
		CreatedAt:   h.now(),
	}); err != nil {
		log.Printf("remove member: audit append failed: %v", err)
	}

	members, err := h.membershipRepo.GetMembersByAgendaID(ctx, params.AgendaID)
	if err != nil {
		log.Printf("remove member: could not load recipients: %v", err)
		return nil
	}
	recipients := agendaRecipients(targetAgenda, members, params.RequesterUserID)
	// The removed user is no longer in the member list but should still
	// hear about it.
	recipients = append(recipients, params.TargetUserID)
	n := notify.Notification{
		Recipients: recipients,
		Type:       notify.TypeMemberRemoved,
		Payload: map[string]any{
			"agenda_id": params.AgendaID,
			"user_id":   params.TargetUserID,
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("remove member: notification failed: %v", err)
	}
	return nil
}
