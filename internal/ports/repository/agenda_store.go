// internal/ports/repository/agenda_store.go
package repository

import (
	"context"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/google/uuid"
)

type AgendaStore interface {
	CreateAgenda(ctx context.Context, a *agenda.Agenda) error
	GetAgendaByID(ctx context.Context, agendaID uuid.UUID) (*agenda.Agenda, error)
}
