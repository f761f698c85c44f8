// internal/domain/audit/audit_event.domain.go
package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one append-only record of a mutation: who did what to
// which agenda/target. Metadata holds action-specific details (event
// title, old/new role, rejection reason).
type AuditEvent struct {
	ID          uuid.UUID
	ActorUserID *uuid.UUID
	AgendaID    *uuid.UUID
	Action      string
	TargetID    *uuid.UUID
	Metadata    map[string]any
	CreatedAt   time.Time
}
