// internal/infra/postgres/userStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/user"
	"github.com/google/uuid"
)

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `
        SELECT id, email, name, created_at, updated_at
        FROM users
        WHERE id = $1`

	return s.queryOne(ctx, query, userID)
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
        SELECT id, email, name, created_at, updated_at
        FROM users
        WHERE email = $1`

	return s.queryOne(ctx, query, email)
}

func (s *PostgresUserStore) queryOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := conn(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainErr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}
