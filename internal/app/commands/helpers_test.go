package commands

import (
	"context"
	"sync"
	"time"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/infra/memory"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/google/uuid"
)

// recordNotifier captures notifications so tests can assert on
// recipients and payloads. FailWith simulates a broken sink.
type recordNotifier struct {
	mu       sync.Mutex
	Sent     []notify.Notification
	FailWith error
}

func (r *recordNotifier) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Sent = append(r.Sent, n)
	return nil
}

type fixture struct {
	agendas     *memory.AgendaStore
	memberships *memory.MemberShipStore
	events      *memory.EventStore
	users       *memory.UserStore
	audits      *memory.AuditStore
	tx          *memory.TxManager
	notifier    *recordNotifier
}

func newFixture() *fixture {
	return &fixture{
		agendas:     memory.NewAgendaStore(),
		memberships: memory.NewMemberShipStore(),
		events:      memory.NewEventStore(),
		users:       memory.NewUserStore(),
		audits:      memory.NewAuditStore(),
		tx:          memory.NewTxManager(),
		notifier:    &recordNotifier{},
	}
}

func (f *fixture) addAgenda(t agenda.Type, owner uuid.UUID) *agenda.Agenda {
	a := &agenda.Agenda{
		AgendaID:    uuid.New(),
		Name:        "Tech Corp",
		Type:        t,
		OwnerUserID: owner,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	_ = f.agendas.CreateAgenda(context.Background(), a)
	return a
}

func (f *fixture) addMember(a *agenda.Agenda, userID uuid.UUID, role membership.Role) *membership.MemberShip {
	m := &membership.MemberShip{
		UserID:    userID,
		AgendaID:  a.AgendaID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_ = f.memberships.CreateMembership(context.Background(), m)
	return m
}
