// internal/app/commands/change_role.commands.go
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
)

type ChangeRoleCmd struct {
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewChangeRoleCmd(
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *ChangeRoleCmd {
	return &ChangeRoleCmd{
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type ChangeRoleParams struct {
	AgendaID        uuid.UUID
	RequesterUserID uuid.UUID
	TargetUserID    uuid.UUID
	// NewRole should already be canonical (membership.CanonicalRole).
	NewRole membership.Role
}

func (h *ChangeRoleCmd) Handle(ctx context.Context, params ChangeRoleParams) (*membership.MemberShip, error) {
	targetAgenda, err := h.agendaRepo.GetAgendaByID(ctx, params.AgendaID)
	if err != nil {
		return nil, domainErr.ErrAgendaNotFound
	}
	target, err := h.membershipRepo.GetMember(ctx, params.TargetUserID, params.AgendaID)
	if err != nil {
		return nil, domainErr.ErrMembershipNotFound
	}
	requesterMem, _ := h.membershipRepo.GetMember(ctx, params.RequesterUserID, params.AgendaID)

	if err := policy.CanChangeRole(targetAgenda, params.RequesterUserID, requesterMem, target); err != nil {
		return nil, err
	}
	// RoleOwner is derived from the agenda row; it can never be assigned.
	if params.NewRole == membership.RoleOwner || !policy.RoleLegalFor(targetAgenda.Type, params.NewRole) {
		return nil, domainErr.ErrRoleNotAllowed
	}

	oldRole := target.Role
	// Conditional on the current role so a concurrent change loses cleanly.
	if err := h.membershipRepo.UpdateMemberRole(ctx, target.UserID, params.AgendaID, oldRole, params.NewRole); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	target.Role = params.NewRole
	target.UpdatedAt = h.now()

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.RequesterUserID,
		AgendaID:    &params.AgendaID,
		Action:      "MEMBER_ROLE_CHANGED",
		TargetID:    &params.TargetUserID,
		Metadata: map[string]any{
			"old_role": string(oldRole),
			"new_role": string(params.NewRole),
		},
		CreatedAt: target.UpdatedAt,
	}); err != nil {
		log.Printf("change role: audit append failed: %v", err)
	}

	members, err := h.membershipRepo.GetMembersByAgendaID(ctx, params.AgendaID)
	if err != nil {
		log.Printf("change role: could not load recipients: %v", err)
		return target, nil
	}
	n := notify.Notification{
		Recipients: agendaRecipients(targetAgenda, members, params.RequesterUserID),
		Type:       notify.TypeRoleChanged,
		Payload: map[string]any{
			"agenda_id": params.AgendaID,
			"user_id":   params.TargetUserID,
			"old_role":  string(oldRole),
			"new_role":  string(params.NewRole),
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("change role: notification failed: %v", err)
	}
	return target, nil
}
