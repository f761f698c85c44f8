// internal/infra/memory/memory.go
//
// In-memory implementations of the repository ports, used by tests and
// local runs. Same contracts as the postgres stores, including the
// conditional (compare-and-swap) writes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/audit"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/domain/user"
	"github.com/google/uuid"
)

type AgendaStore struct {
	mu      sync.RWMutex
	agendas map[uuid.UUID]agenda.Agenda
}

func NewAgendaStore() *AgendaStore {
	return &AgendaStore{agendas: make(map[uuid.UUID]agenda.Agenda)}
}

func (s *AgendaStore) CreateAgenda(ctx context.Context, a *agenda.Agenda) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agendas[a.AgendaID] = *a
	return nil
}

func (s *AgendaStore) GetAgendaByID(ctx context.Context, agendaID uuid.UUID) (*agenda.Agenda, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agendas[agendaID]
	if !ok {
		return nil, domainErr.ErrAgendaNotFound
	}
	copied := a
	return &copied, nil
}

type memberKey struct {
	userID   uuid.UUID
	agendaID uuid.UUID
}

type MemberShipStore struct {
	mu      sync.RWMutex
	members map[memberKey]membership.MemberShip
}

func NewMemberShipStore() *MemberShipStore {
	return &MemberShipStore{members: make(map[memberKey]membership.MemberShip)}
}

func (s *MemberShipStore) CreateMembership(ctx context.Context, m *membership.MemberShip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{m.UserID, m.AgendaID}
	if _, exists := s.members[key]; exists {
		return domainErr.ErrDuplicateMembership
	}
	s.members[key] = *m
	return nil
}

func (s *MemberShipStore) GetMember(ctx context.Context, userID, agendaID uuid.UUID) (*membership.MemberShip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberKey{userID, agendaID}]
	if !ok {
		return nil, domainErr.ErrMembershipNotFound
	}
	copied := m
	return &copied, nil
}

func (s *MemberShipStore) GetMembersByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]membership.MemberShip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []membership.MemberShip
	for key, m := range s.members {
		if key.agendaID == agendaID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (s *MemberShipStore) UpdateMemberRole(ctx context.Context, userID, agendaID uuid.UUID, fromRole, toRole membership.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{userID, agendaID}
	m, ok := s.members[key]
	if !ok || m.Role != fromRole {
		return domainErr.ErrStaleTransition
	}
	m.Role = toRole
	m.UpdatedAt = time.Now().UTC()
	s.members[key] = m
	return nil
}

func (s *MemberShipStore) DeleteMembership(ctx context.Context, userID, agendaID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{userID, agendaID}
	if _, ok := s.members[key]; !ok {
		return domainErr.ErrMembershipNotFound
	}
	delete(s.members, key)
	return nil
}

type EventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]event.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[uuid.UUID]event.Event)}
}

func (s *EventStore) CreateEvent(ctx context.Context, ev *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.EventID] = *ev
	return nil
}

func (s *EventStore) GetEventByID(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[eventID]
	if !ok {
		return nil, domainErr.ErrEventNotFound
	}
	copied := ev
	return &copied, nil
}

func (s *EventStore) ListEventsByAgendaID(ctx context.Context, agendaID uuid.UUID) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []*event.Event
	for _, ev := range s.events {
		if ev.AgendaID == agendaID {
			copied := ev
			events = append(events, &copied)
		}
	}
	return events, nil
}

func (s *EventStore) FindOverlapping(ctx context.Context, agendaID, creatorID uuid.UUID, start, end time.Time) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []*event.Event
	for _, ev := range s.events {
		if ev.AgendaID != agendaID || ev.CreatorUserID != creatorID || ev.Status != event.StatusConfirmed {
			continue
		}
		if ev.Overlaps(start, end) {
			copied := ev
			events = append(events, &copied)
		}
	}
	return events, nil
}

func (s *EventStore) UpdateEvent(ctx context.Context, ev *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[ev.EventID]; !ok {
		return domainErr.ErrEventNotFound
	}
	s.events[ev.EventID] = *ev
	return nil
}

func (s *EventStore) UpdateEventStatus(ctx context.Context, ev *event.Event, fromStatus event.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.events[ev.EventID]
	if !ok || stored.Status != fromStatus {
		return domainErr.ErrStaleTransition
	}
	s.events[ev.EventID] = *ev
	return nil
}

func (s *EventStore) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return domainErr.ErrEventNotFound
	}
	delete(s.events, eventID)
	return nil
}

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]user.User)}
}

func (s *UserStore) CreateUser(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = *u
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, domainErr.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, domainErr.ErrUserNotFound
}

type AuditStore struct {
	mu     sync.Mutex
	Events []audit.AuditEvent
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Append(ctx context.Context, ev *audit.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, *ev)
	return nil
}

// TxManager satisfies the transaction port without real transactions;
// the memory stores are individually atomic.
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (tm *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
