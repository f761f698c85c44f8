// internal/domain/policy/role_policy.go
package policy

import (
	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

// EffectiveRole calculates the final authority a user has in an agenda.
// This is the SINGLE SOURCE OF TRUTH for role resolution: every other
// component asks here instead of re-deriving ownership checks.
//
// Invariant: the user stored as the agenda's owner ALWAYS gets RoleOwner,
// overriding anything in the memberships table. A nil membership for a
// non-owner means no access at all (ok == false).
func EffectiveRole(a *agenda.Agenda, userID uuid.UUID, m *membership.MemberShip) (membership.Role, bool) {
	if a.OwnerUserID == userID {
		return membership.RoleOwner, true
	}
	if m == nil {
		return "", false
	}
	return m.Role, true
}

// legalRoles is the closed set of storable roles per agenda type.
// Personal agendas permit no memberships at all. RoleOwner is derived,
// never stored, so it is absent from every set.
var legalRoles = map[agenda.Type]map[membership.Role]bool{
	agenda.TypeLaboral: {
		membership.RoleChief:    true,
		membership.RoleEmployee: true,
	},
	agenda.TypeEducativa: {
		membership.RoleProfessor: true,
		membership.RoleStudent:   true,
	},
	agenda.TypeColaborativa: {
		membership.RoleEditor: true,
		membership.RoleViewer: true,
	},
	agenda.TypePersonal: {},
}

// RoleLegalFor reports whether role may be stored as a membership row
// in an agenda of type t.
func RoleLegalFor(t agenda.Type, role membership.Role) bool {
	return legalRoles[t][role]
}
