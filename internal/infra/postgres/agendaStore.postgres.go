// internal/infra/postgres/agendaStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/google/uuid"
)

type PostgresAgendaStore struct {
	db *sql.DB
}

func NewPostgresAgendaStore(db *sql.DB) *PostgresAgendaStore {
	return &PostgresAgendaStore{db: db}
}

func (s *PostgresAgendaStore) CreateAgenda(ctx context.Context, a *agenda.Agenda) error {
	query := `
        INSERT INTO agendas (id, name, type, owner_user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := conn(ctx, s.db).ExecContext(ctx, query,
		a.AgendaID,
		a.Name,
		a.Type,
		a.OwnerUserID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert agenda: %w", err)
	}
	return nil
}

func (s *PostgresAgendaStore) GetAgendaByID(ctx context.Context, agendaID uuid.UUID) (*agenda.Agenda, error) {
	query := `
        SELECT id, name, type, owner_user_id, created_at, updated_at
        FROM agendas
        WHERE id = $1`

	var a agenda.Agenda
	err := conn(ctx, s.db).QueryRowContext(ctx, query, agendaID).Scan(
		&a.AgendaID,
		&a.Name,
		&a.Type,
		&a.OwnerUserID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainErr.ErrAgendaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query agenda: %w", err)
	}
	return &a, nil
}
