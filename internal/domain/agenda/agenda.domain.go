// internal/domain/agenda/agenda.domain.go
package agenda

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePersonal     Type = "personal"
	TypeLaboral      Type = "laboral"
	TypeEducativa    Type = "educativa"
	TypeColaborativa Type = "colaborativa"
)

type Agenda struct {
	AgendaID    uuid.UUID
	Name        string
	Type        Type
	OwnerUserID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwner reports whether userID is the single owning user of the agenda.
// The owner never appears as a membership row; ownership lives here only.
func (a *Agenda) IsOwner(userID uuid.UUID) bool {
	return a.OwnerUserID == userID
}
