// internal/domain/policy/permissions.go
package policy

import (
	"github.com/agendly/agenda-service/internal/domain/agenda"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

type Action string

const (
	ActionCreateEvent  Action = "create_event"
	ActionUpdateEvent  Action = "update_event"
	ActionDeleteEvent  Action = "delete_event"
	ActionApproveEvent Action = "approve_event"
	ActionRejectEvent  Action = "reject_event"
	ActionChangeRole   Action = "change_role"
	ActionRemoveMember Action = "remove_member"
)

// mutationRule is what update/delete grants a given (type, role) pair.
// Roles missing from their type's map get the zero value, mutNever.
type mutationRule int

const (
	mutNever mutationRule = iota
	mutAny
	mutOwn
	mutOwnWhilePending
)

// eventMutation is the update/delete decision table. The owner never
// consults it (always allowed); personal agendas have no rows because
// only their owner exists.
var eventMutation = map[agenda.Type]map[membership.Role]mutationRule{
	agenda.TypeColaborativa: {
		membership.RoleEditor: mutOwn,
		membership.RoleViewer: mutNever,
	},
	agenda.TypeLaboral: {
		membership.RoleChief: mutAny,
		// An employee loses edit/delete rights the moment the event is
		// approved; only the chief or owner retains them.
		membership.RoleEmployee: mutOwnWhilePending,
	},
	agenda.TypeEducativa: {
		// Professors may edit any event, including other professors'.
		membership.RoleProfessor: mutAny,
		membership.RoleStudent:   mutNever,
	},
}

// CanCreateEvent authorizes event creation. The initial status of the
// created event is a separate question answered by InitialStatus.
func CanCreateEvent(a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip) error {
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	if a.Type == agenda.TypeEducativa && role == membership.RoleStudent {
		return domainErr.Forbidden("students cannot create events")
	}
	return nil
}

// InitialStatus resolves the status a freshly created event starts in.
// Everything is confirmed on creation except employee-created events in
// laboral agendas, which enter the approval workflow.
func InitialStatus(a *agenda.Agenda, creatorRole membership.Role) event.Status {
	if a.Type == agenda.TypeLaboral && creatorRole == membership.RoleEmployee {
		return event.StatusPendingApproval
	}
	return event.StatusConfirmed
}

// CanMutateEvent authorizes update and delete against the decision
// table above.
func CanMutateEvent(action Action, ev *event.Event, a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip) error {
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	if role == membership.RoleOwner {
		return nil
	}
	switch eventMutation[a.Type][role] {
	case mutAny:
		return nil
	case mutOwn:
		if ev.CreatorUserID == requesterID {
			return nil
		}
		return domainErr.Forbidden("%s may only %s their own events", role, verb(action))
	case mutOwnWhilePending:
		if ev.CreatorUserID != requesterID {
			return domainErr.Forbidden("%s may only %s their own events", role, verb(action))
		}
		if ev.Status != event.StatusPendingApproval {
			return domainErr.Forbidden("employee cannot %s an event once it left pending approval", verb(action))
		}
		return nil
	default:
		return domainErr.Forbidden("role %s may not %s events in a %s agenda", role, verb(action), a.Type)
	}
}

// CanReviewEvent authorizes approve/reject. The approval workflow only
// exists in laboral agendas and only the owner or a chief drives it.
// Whether the event is still pending is checked by the state machine
// itself, not here.
func CanReviewEvent(a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip) error {
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	if a.Type != agenda.TypeLaboral {
		return domainErr.Forbidden("approval workflow only exists in laboral agendas")
	}
	if role != membership.RoleOwner && role != membership.RoleChief {
		return domainErr.Forbidden("only the owner or a chief may review pending events")
	}
	return nil
}

// CanChangeRole authorizes changing target's stored role.
// Self-promotion/demotion is forbidden unconditionally.
func CanChangeRole(a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip, target *membership.MemberShip) error {
	if requesterID == target.UserID {
		return domainErr.ErrSelfTarget
	}
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	switch role {
	case membership.RoleOwner:
		// Educativa roles are fixed at invitation time, even for the owner.
		if a.Type == agenda.TypeEducativa {
			return domainErr.Forbidden("roles in educativa agendas cannot be changed")
		}
		return nil
	case membership.RoleChief:
		// A chief may promote an employee but may not alter another
		// chief's (or the owner's) role.
		if target.Role == membership.RoleEmployee {
			return nil
		}
		return domainErr.Forbidden("a chief may only change an employee's role")
	default:
		return domainErr.Forbidden("role %s may not change member roles", role)
	}
}

// CanRemoveMember authorizes removing target's membership row.
func CanRemoveMember(a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip, target *membership.MemberShip) error {
	if requesterID == target.UserID {
		return domainErr.ErrSelfTarget
	}
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	switch role {
	case membership.RoleOwner:
		return nil
	case membership.RoleChief:
		if target.Role == membership.RoleEmployee {
			return nil
		}
		return domainErr.Forbidden("a chief may only remove employees")
	case membership.RoleProfessor:
		if target.Role == membership.RoleStudent {
			return nil
		}
		return domainErr.Forbidden("a professor may only remove students")
	default:
		return domainErr.Forbidden("role %s may not remove members", role)
	}
}

// CanInviteMember authorizes creating a membership row with newRole.
// Role legality against the agenda type is validated by the caller via
// RoleLegalFor; this only answers who may invite whom.
func CanInviteMember(a *agenda.Agenda, requesterID uuid.UUID, m *membership.MemberShip, newRole membership.Role) error {
	if a.Type == agenda.TypePersonal {
		return domainErr.Forbidden("personal agendas cannot have members")
	}
	role, hasAccess := EffectiveRole(a, requesterID, m)
	if !hasAccess {
		return domainErr.Forbidden("requester has no access to this agenda")
	}
	switch role {
	case membership.RoleOwner:
		return nil
	case membership.RoleChief:
		if newRole == membership.RoleEmployee {
			return nil
		}
		return domainErr.Forbidden("a chief may only invite employees")
	case membership.RoleProfessor:
		if newRole == membership.RoleStudent {
			return nil
		}
		return domainErr.Forbidden("a professor may only invite students")
	default:
		return domainErr.Forbidden("role %s may not invite members", role)
	}
}

func verb(action Action) string {
	switch action {
	case ActionDeleteEvent:
		return "delete"
	default:
		return "edit"
	}
}
