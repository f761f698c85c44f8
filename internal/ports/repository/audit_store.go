// internal/ports/repository/audit_store.go
package repository

import (
	"context"

	"github.com/agendly/agenda-service/internal/domain/audit"
)

type AuditStore interface {
	Append(ctx context.Context, ev *audit.AuditEvent) error
}
