// internal/infra/postgres/membershipStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresMemberShipStore struct {
	db *sql.DB
}

func NewPostgresMemberShipStore(db *sql.DB) *PostgresMemberShipStore {
	return &PostgresMemberShipStore{db: db}
}

func (s *PostgresMemberShipStore) CreateMembership(ctx context.Context, m *membership.MemberShip) error {
	query := `
        INSERT INTO memberships (user_id, agenda_id, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := conn(ctx, s.db).ExecContext(ctx, query,
		m.UserID,
		m.AgendaID,
		m.Role,
		m.CreatedAt,
		m.UpdatedAt,
	)
	// (user_id, agenda_id) is unique; surface a duplicate insert as the
	// domain conflict rather than a raw driver error.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domainErr.ErrDuplicateMembership
	}
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

func (s *PostgresMemberShipStore) GetMember(ctx context.Context, userID, agendaID uuid.UUID) (*membership.MemberShip, error) {
	query := `
        SELECT user_id, agenda_id, role, created_at, updated_at
        FROM memberships
        WHERE user_id = $1 AND agenda_id = $2`

	var m membership.MemberShip
	err := conn(ctx, s.db).QueryRowContext(ctx, query, userID, agendaID).Scan(
		&m.UserID,
		&m.AgendaID,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainErr.ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query membership: %w", err)
	}
	return &m, nil
}

func (s *PostgresMemberShipStore) GetMembersByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]membership.MemberShip, error) {
	query := `
        SELECT user_id, agenda_id, role, created_at, updated_at
        FROM memberships
        WHERE agenda_id = $1
        ORDER BY created_at ASC`

	rows, err := conn(ctx, s.db).QueryContext(ctx, query, agendaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []membership.MemberShip
	for rows.Next() {
		var m membership.MemberShip
		if err := rows.Scan(&m.UserID, &m.AgendaID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole is a compare-and-swap on the stored role: the update
// only lands if the row still holds fromRole.
func (s *PostgresMemberShipStore) UpdateMemberRole(ctx context.Context, userID, agendaID uuid.UUID, fromRole, toRole membership.Role) error {
	query := `
        UPDATE memberships
        SET role = $3, updated_at = NOW()
        WHERE user_id = $1 AND agenda_id = $2 AND role = $4`

	res, err := conn(ctx, s.db).ExecContext(ctx, query, userID, agendaID, toRole, fromRole)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErr.ErrStaleTransition
	}
	return nil
}

func (s *PostgresMemberShipStore) DeleteMembership(ctx context.Context, userID, agendaID uuid.UUID) error {
	query := `DELETE FROM memberships WHERE user_id = $1 AND agenda_id = $2`

	res, err := conn(ctx, s.db).ExecContext(ctx, query, userID, agendaID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErr.ErrMembershipNotFound
	}
	return nil
}
