// internal/domain/policy/visibility.go
package policy

import (
	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

// visibilityRule is what a private event grants a given (type, role)
// pair after the fixed pre-checks have not decided.
type visibilityRule int

const (
	visNever visibilityRule = iota
	visAlways
	visIfShared
	visIfSharedOrStudentFlag
)

// visibilityByRole is the per-type rule table for private events.
// Roles missing from their type's map fall back to visIfShared: the
// share list is the floor every role keeps.
//
// Personal agendas have no storable roles, so they never reach the
// table (creator/owner pre-checks cover them).
var visibilityByRole = map[agenda.Type]map[membership.Role]visibilityRule{
	agenda.TypeColaborativa: {
		// Every member sees every event, mirroring the open intent of
		// the non-private rule for this type.
		membership.RoleEditor: visAlways,
		membership.RoleViewer: visAlways,
	},
	agenda.TypeLaboral: {
		membership.RoleChief:    visAlways,
		membership.RoleEmployee: visIfShared,
	},
	agenda.TypeEducativa: {
		membership.RoleProfessor: visAlways,
		membership.RoleStudent:   visIfSharedOrStudentFlag,
	},
}

// IsVisible decides whether viewer may see ev. Pure function; absence of
// a membership is a valid input. Rules run in a fixed order and the
// first match decides:
//
//  1. non-private events are open to anyone with access to the agenda
//  2. creators always see their own events
//  3. no effective role means no access
//  4. the owner sees everything
//  5. the per-type table above
//  6. fallback: in the share list or not at all
//
// Visibility is per-event, never per-agenda: listings must run this for
// every event in the result instead of filtering at the query level.
func IsVisible(ev *event.Event, a *agenda.Agenda, viewerID uuid.UUID, m *membership.MemberShip) bool {
	role, hasAccess := EffectiveRole(a, viewerID, m)

	if !ev.IsPrivate && hasAccess {
		return true
	}
	if ev.CreatorUserID == viewerID {
		return true
	}
	if !hasAccess {
		return false
	}
	if role == membership.RoleOwner {
		return true
	}

	rule, found := visibilityByRole[a.Type][role]
	if !found {
		rule = visIfShared
	}
	switch rule {
	case visAlways:
		return true
	case visIfShared:
		return ev.IsSharedWith(viewerID)
	case visIfSharedOrStudentFlag:
		return ev.VisibleToStudents || ev.IsSharedWith(viewerID)
	default:
		return false
	}
}
