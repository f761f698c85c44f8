// internal/infra/postgres/eventStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

const eventColumns = `
        id, agenda_id, creator_user_id, title, description,
        start_time, end_time, status, is_private, visible_to_students,
        approved_by_user_id, approved_at, rejection_reason,
        created_at, updated_at`

func (s *PostgresEventStore) CreateEvent(ctx context.Context, ev *event.Event) error {
	query := `
        INSERT INTO events (` + eventColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	db := conn(ctx, s.db)
	_, err := db.ExecContext(ctx, query,
		ev.EventID,
		ev.AgendaID,
		ev.CreatorUserID,
		ev.Title,
		ev.Description,
		ev.StartTime,
		ev.EndTime,
		ev.Status,
		ev.IsPrivate,
		ev.VisibleToStudents,
		ev.ApprovedByUserID,
		ev.ApprovedAt,
		ev.RejectionReason,
		ev.CreatedAt,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return s.replaceShares(ctx, db, ev.EventID, ev.SharedWith)
}

func (s *PostgresEventStore) GetEventByID(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	db := conn(ctx, s.db)
	ev, err := scanEvent(db.QueryRowContext(ctx, query, eventID))
	if err != nil {
		return nil, err
	}
	shares, err := s.loadShares(ctx, db, []uuid.UUID{ev.EventID})
	if err != nil {
		return nil, err
	}
	ev.SharedWith = shares[ev.EventID]
	return ev, nil
}

func (s *PostgresEventStore) ListEventsByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]*event.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE agenda_id = $1
        ORDER BY start_time ASC`

	db := conn(ctx, s.db)
	rows, err := db.QueryContext(ctx, query, agendaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*event.Event
	var ids []uuid.UUID
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		ids = append(ids, ev.EventID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shares, err := s.loadShares(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		ev.SharedWith = shares[ev.EventID]
	}
	return events, nil
}

// FindOverlapping applies the half-open [start, end) convention in SQL:
// strict inequalities, so touching boundaries do not match.
func (s *PostgresEventStore) FindOverlapping(ctx context.Context, agendaID, creatorID uuid.UUID, start, end time.Time) ([]*event.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE agenda_id = $1
          AND creator_user_id = $2
          AND status = $3
          AND start_time < $5
          AND $4 < end_time
        ORDER BY start_time ASC`

	rows, err := conn(ctx, s.db).QueryContext(ctx, query, agendaID, creatorID, event.StatusConfirmed, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *PostgresEventStore) UpdateEvent(ctx context.Context, ev *event.Event) error {
	query := `
        UPDATE events
        SET title = $2, description = $3, start_time = $4, end_time = $5,
            is_private = $6, visible_to_students = $7, updated_at = $8
        WHERE id = $1`

	db := conn(ctx, s.db)
	res, err := db.ExecContext(ctx, query,
		ev.EventID,
		ev.Title,
		ev.Description,
		ev.StartTime,
		ev.EndTime,
		ev.IsPrivate,
		ev.VisibleToStudents,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErr.ErrEventNotFound
	}
	return s.replaceShares(ctx, db, ev.EventID, ev.SharedWith)
}

// UpdateEventStatus is the compare-and-swap the state machine relies on:
// the write only lands if the row still holds fromStatus, so two
// concurrent approve/reject calls cannot both succeed.
func (s *PostgresEventStore) UpdateEventStatus(ctx context.Context, ev *event.Event, fromStatus event.Status) error {
	query := `
        UPDATE events
        SET status = $2, approved_by_user_id = $3, approved_at = $4,
            rejection_reason = $5, updated_at = $6
        WHERE id = $1 AND status = $7`

	res, err := conn(ctx, s.db).ExecContext(ctx, query,
		ev.EventID,
		ev.Status,
		ev.ApprovedByUserID,
		ev.ApprovedAt,
		ev.RejectionReason,
		ev.UpdatedAt,
		fromStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
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

func (s *PostgresEventStore) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	// event_shares rows go with the event (ON DELETE CASCADE).
	query := `DELETE FROM events WHERE id = $1`

	res, err := conn(ctx, s.db).ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErr.ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var ev event.Event
	var approvedBy uuid.NullUUID
	var approvedAt sql.NullTime
	var reason sql.NullString

	err := row.Scan(
		&ev.EventID,
		&ev.AgendaID,
		&ev.CreatorUserID,
		&ev.Title,
		&ev.Description,
		&ev.StartTime,
		&ev.EndTime,
		&ev.Status,
		&ev.IsPrivate,
		&ev.VisibleToStudents,
		&approvedBy,
		&approvedAt,
		&reason,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainErr.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	if approvedBy.Valid {
		ev.ApprovedByUserID = &approvedBy.UUID
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		ev.ApprovedAt = &t
	}
	if reason.Valid {
		r := reason.String
		ev.RejectionReason = &r
	}
	return &ev, nil
}

func (s *PostgresEventStore) loadShares(ctx context.Context, db DBTX, eventIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	shares := make(map[uuid.UUID][]uuid.UUID)
	if len(eventIDs) == 0 {
		return shares, nil
	}
	query := `SELECT event_id, user_id FROM event_shares WHERE event_id = ANY($1)`

	ids := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		ids[i] = id.String()
	}
	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, userID uuid.UUID
		if err := rows.Scan(&eventID, &userID); err != nil {
			return nil, err
		}
		shares[eventID] = append(shares[eventID], userID)
	}
	return shares, rows.Err()
}

func (s *PostgresEventStore) replaceShares(ctx context.Context, db DBTX, eventID uuid.UUID, userIDs []uuid.UUID) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM event_shares WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to clear event shares: %w", err)
	}
	for _, userID := range userIDs {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO event_shares (event_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			eventID, userID,
		); err != nil {
			return fmt.Errorf("failed to insert event share: %w", err)
		}
	}
	return nil
}
