// internal/ports/repository/user_store.go
package repository

import (
	"context"

	"github.com/agendly/agenda-service/internal/domain/user"
	"github.com/google/uuid"
)

type UserStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}
