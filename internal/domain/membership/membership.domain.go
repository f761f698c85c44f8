// internal/domain/membership/membership.domain.go
package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	// RoleOwner is never stored in the memberships table.
	// It is derived from Agenda.OwnerUserID in the policy layer.
	RoleOwner Role = "owner"

	// Laboral agendas
	RoleChief    Role = "chief"
	RoleEmployee Role = "employee"

	// Educativa agendas
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"

	// Colaborativa agendas
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// CanonicalRole normalizes a raw role string at the boundary.
// "teacher" is a legacy alias for professor; no other component
// ever sees it.
func CanonicalRole(raw string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if r == "teacher" {
		return RoleProfessor
	}
	return r
}

type MemberShip struct {
	UserID    uuid.UUID
	AgendaID  uuid.UUID
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
