// internal/ports/repository/membership_store.go
package repository

import (
	"context"

	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

type MemberShipStore interface {
	CreateMembership(ctx context.Context, m *membership.MemberShip) error
	GetMember(ctx context.Context, userID, agendaID uuid.UUID) (*membership.MemberShip, error)
	GetMembersByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]membership.MemberShip, error)
	// UpdateMemberRole is conditional on the row still holding fromRole
	// at write time, so two concurrent role changes cannot both succeed.
	// Returns ErrStaleTransition when the precondition no longer holds.
	UpdateMemberRole(ctx context.Context, userID, agendaID uuid.UUID, fromRole, toRole membership.Role) error
	DeleteMembership(ctx context.Context, userID, agendaID uuid.UUID) error
}
