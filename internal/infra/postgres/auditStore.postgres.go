// internal/infra/postgres/auditStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/agendly/agenda-service/internal/domain/audit"
)

type PostgresAuditStore struct {
	db *sql.DB
}

func NewPostgresAuditStore(db *sql.DB) *PostgresAuditStore {
	return &PostgresAuditStore{db: db}
}

func (s *PostgresAuditStore) Append(ctx context.Context, ev *audit.AuditEvent) error {
	metadata, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal audit metadata: %w", err)
	}

	query := `
        INSERT INTO audit_events (id, actor_user_id, agenda_id, action, target_id, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = conn(ctx, s.db).ExecContext(ctx, query,
		ev.ID,
		ev.ActorUserID,
		ev.AgendaID,
		ev.Action,
		ev.TargetID,
		metadata,
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}
