// internal/domain/user/user.domain.go
package user

import (
	"time"

	"github.com/google/uuid"
)

// User is referenced by agendas, memberships and events but owned by none
// of them. The engine only needs identity and a way to resolve invitations
// by email.
type User struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
