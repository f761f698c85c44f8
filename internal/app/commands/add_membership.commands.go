// internal/app/commands/add_membership.commands.go
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/domain/policy"
	"github.com/agendly/agenda-service/internal/domain/user"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/agendly/agenda-service/internal/ports/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AddMembershipCmd struct {
	userRepo       repository.UserStore
	agendaRepo     repository.AgendaStore
	membershipRepo repository.MemberShipStore
	auditRepo      repository.AuditStore
	notifier       notify.Notifier
	now            func() time.Time
}

func NewAddMembershipCmd(
	userRepo repository.UserStore,
	agendaRepo repository.AgendaStore,
	membershipRepo repository.MemberShipStore,
	auditRepo repository.AuditStore,
	notifier notify.Notifier,
) *AddMembershipCmd {
	return &AddMembershipCmd{
		userRepo:       userRepo,
		agendaRepo:     agendaRepo,
		membershipRepo: membershipRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type AddMembershipParams struct {
	AgendaID    uuid.UUID
	ActorUserID uuid.UUID // the inviter

	TargetUserEmail string
	// Role to assign; pass through membership.CanonicalRole at the edge
	// so "teacher" arrives here as professor.
	Role membership.Role
}

func (h *AddMembershipCmd) Handle(ctx context.Context, params AddMembershipParams) (*membership.MemberShip, error) {
	// Invariant: the owner role cannot be invited into existence.
	if params.Role == membership.RoleOwner {
		return nil, domainErr.ErrRoleNotAllowed
	}

	var (
		targetUser   *user.User
		targetAgenda *agenda.Agenda
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		u, err := h.userRepo.GetUserByEmail(gctx, params.TargetUserEmail)
		if err != nil {
			return domainErr.ErrUserNotFound
		}
		targetUser = u
		return nil
	})
	group.Go(func() error {
		a, err := h.agendaRepo.GetAgendaByID(gctx, params.AgendaID)
		if err != nil {
			return domainErr.ErrAgendaNotFound
		}
		targetAgenda = a
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	actorMem, _ := h.membershipRepo.GetMember(ctx, params.ActorUserID, params.AgendaID)
	if err := policy.CanInviteMember(targetAgenda, params.ActorUserID, actorMem, params.Role); err != nil {
		return nil, err
	}
	if !policy.RoleLegalFor(targetAgenda.Type, params.Role) {
		return nil, domainErr.ErrRoleNotAllowed
	}
	// Cannot invite yourself, and the owner is already an implicit member.
	if targetUser.UserID == params.ActorUserID || targetAgenda.IsOwner(targetUser.UserID) {
		return nil, domainErr.ErrInvalidInput
	}
	if existing, _ := h.membershipRepo.GetMember(ctx, targetUser.UserID, params.AgendaID); existing != nil {
		return nil, domainErr.ErrDuplicateMembership
	}

	now := h.now()
	invite := &membership.MemberShip{
		UserID:    targetUser.UserID,
		AgendaID:  params.AgendaID,
		Role:      params.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.membershipRepo.CreateMembership(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := h.auditRepo.Append(ctx, &audit.AuditEvent{
		ID:          uuid.New(),
		ActorUserID: &params.ActorUserID,
		AgendaID:    &params.AgendaID,
		Action:      "MEMBER_INVITED",
		TargetID:    &targetUser.UserID,
		Metadata:    map[string]any{"role": string(params.Role)},
		CreatedAt:   now,
	}); err != nil {
		log.Printf("add membership: audit append failed: %v", err)
	}

	n := notify.Notification{
		Recipients: []uuid.UUID{targetUser.UserID},
		Type:       notify.TypeMemberInvited,
		Payload: map[string]any{
			"agenda_id":   params.AgendaID,
			"agenda_name": targetAgenda.Name,
			"role":        string(params.Role),
		},
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		log.Printf("add membership: notification failed: %v", err)
	}
	return invite, nil
}
