package policy

import (
	"testing"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

var (
	alice = uuid.New() // agenda owner in every fixture
	bob   = uuid.New()
	carol = uuid.New()
)

func testAgenda(t agenda.Type) *agenda.Agenda {
	return &agenda.Agenda{
		AgendaID:    uuid.New(),
		Name:        "Tech Corp",
		Type:        t,
		OwnerUserID: alice,
	}
}

func member(a *agenda.Agenda, userID uuid.UUID, role membership.Role) *membership.MemberShip {
	return &membership.MemberShip{UserID: userID, AgendaID: a.AgendaID, Role: role}
}

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name       string
		agendaType agenda.Type
		event      event.Event
		viewerID   uuid.UUID
		viewerRole membership.Role // empty = no membership row
		want       bool
	}{
		{
			name:       "non-private event visible to any member",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: false},
			viewerID:   bob,
			viewerRole: membership.RoleEmployee,
			want:       true,
		},
		{
			name:       "non-private event hidden from non-members",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: false},
			viewerID:   carol,
			want:       false,
		},
		{
			name:       "creator sees own private event even without membership",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: carol, IsPrivate: true},
			viewerID:   carol,
			want:       true,
		},
		{
			name:       "owner sees every private event",
			agendaType: agenda.TypeEducativa,
			event:      event.Event{CreatorUserID: bob, IsPrivate: true},
			viewerID:   alice,
			want:       true,
		},
		{
			// Scenario: "Executive Strategy", private, no shares.
			name:       "employee cannot see unshared private event",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			viewerRole: membership.RoleEmployee,
			want:       false,
		},
		{
			// Scenario: "1:1 Alice & Bob", private, shared with Bob.
			name:       "employee sees private event shared with them",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true, SharedWith: []uuid.UUID{bob}},
			viewerID:   bob,
			viewerRole: membership.RoleEmployee,
			want:       true,
		},
		{
			// Scenario: "Bob Private Task" seen by a third employee.
			name:       "other employee cannot see colleague's unshared private event",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: bob, IsPrivate: true},
			viewerID:   carol,
			viewerRole: membership.RoleEmployee,
			want:       false,
		},
		{
			name:       "chief sees every private event",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: bob, IsPrivate: true},
			viewerID:   carol,
			viewerRole: membership.RoleChief,
			want:       true,
		},
		{
			// Scenario: "Exam Prep Notes", private, not for students.
			name:       "student cannot see private event withheld from students",
			agendaType: agenda.TypeEducativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true, VisibleToStudents: false},
			viewerID:   bob,
			viewerRole: membership.RoleStudent,
			want:       false,
		},
		{
			// Scenario: "Homework Assignment", private, for students.
			name:       "student sees private event flagged visible to students",
			agendaType: agenda.TypeEducativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true, VisibleToStudents: true},
			viewerID:   bob,
			viewerRole: membership.RoleStudent,
			want:       true,
		},
		{
			name:       "student sees private event shared with them",
			agendaType: agenda.TypeEducativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true, SharedWith: []uuid.UUID{bob}},
			viewerID:   bob,
			viewerRole: membership.RoleStudent,
			want:       true,
		},
		{
			name:       "professor sees every private event",
			agendaType: agenda.TypeEducativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			viewerRole: membership.RoleProfessor,
			want:       true,
		},
		{
			name:       "colaborativa viewer sees every private event",
			agendaType: agenda.TypeColaborativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			viewerRole: membership.RoleViewer,
			want:       true,
		},
		{
			name:       "colaborativa editor sees every private event",
			agendaType: agenda.TypeColaborativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			viewerRole: membership.RoleEditor,
			want:       true,
		},
		{
			name:       "no membership means no visibility",
			agendaType: agenda.TypeColaborativa,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   carol,
			want:       false,
		},
		{
			// A role without an explicit rule for its type falls back to
			// the share list.
			name:       "unmatched role falls back to share list, not shared",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			viewerRole: membership.RoleViewer,
			want:       false,
		},
		{
			name:       "unmatched role falls back to share list, shared",
			agendaType: agenda.TypeLaboral,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true, SharedWith: []uuid.UUID{bob}},
			viewerID:   bob,
			viewerRole: membership.RoleViewer,
			want:       true,
		},
		{
			name:       "personal agenda owner sees own events",
			agendaType: agenda.TypePersonal,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   alice,
			want:       true,
		},
		{
			name:       "personal agenda hidden from everyone else",
			agendaType: agenda.TypePersonal,
			event:      event.Event{CreatorUserID: alice, IsPrivate: true},
			viewerID:   bob,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgenda(tt.agendaType)
			ev := tt.event
			ev.EventID = uuid.New()
			ev.AgendaID = a.AgendaID

			var m *membership.MemberShip
			if tt.viewerRole != "" {
				m = member(a, tt.viewerID, tt.viewerRole)
			}
			got := IsVisible(&ev, a, tt.viewerID, m)
			if got != tt.want {
				t.Errorf("IsVisible() = %v, want %v", got, tt.want)
			}
			// Pure function: same inputs, same answer.
			if again := IsVisible(&ev, a, tt.viewerID, m); again != got {
				t.Errorf("IsVisible() not stable: first %v, second %v", got, again)
			}
		})
	}
}

func TestEffectiveRole(t *testing.T) {
	a := testAgenda(agenda.TypeLaboral)

	role, ok := EffectiveRole(a, alice, nil)
	if !ok || role != membership.RoleOwner {
		t.Errorf("owner: got (%v, %v), want (owner, true)", role, ok)
	}

	// Owner wins even over a stored membership row.
	role, ok = EffectiveRole(a, alice, member(a, alice, membership.RoleEmployee))
	if !ok || role != membership.RoleOwner {
		t.Errorf("owner with row: got (%v, %v), want (owner, true)", role, ok)
	}

	role, ok = EffectiveRole(a, bob, member(a, bob, membership.RoleChief))
	if !ok || role != membership.RoleChief {
		t.Errorf("member: got (%v, %v), want (chief, true)", role, ok)
	}

	if _, ok := EffectiveRole(a, bob, nil); ok {
		t.Error("non-member: expected ok == false")
	}
}

func TestCanonicalRole(t *testing.T) {
	if got := membership.CanonicalRole("TEACHER"); got != membership.RoleProfessor {
		t.Errorf("CanonicalRole(TEACHER) = %v, want professor", got)
	}
	if got := membership.CanonicalRole("Professor"); got != membership.RoleProfessor {
		t.Errorf("CanonicalRole(Professor) = %v, want professor", got)
	}
	if got := membership.CanonicalRole("employee"); got != membership.RoleEmployee {
		t.Errorf("CanonicalRole(employee) = %v, want employee", got)
	}
}

func TestRoleLegalFor(t *testing.T) {
	tests := []struct {
		agendaType agenda.Type
		role       membership.Role
		want       bool
	}{
		{agenda.TypeLaboral, membership.RoleChief, true},
		{agenda.TypeLaboral, membership.RoleEmployee, true},
		{agenda.TypeLaboral, membership.RoleStudent, false},
		{agenda.TypeEducativa, membership.RoleProfessor, true},
		{agenda.TypeEducativa, membership.RoleStudent, true},
		{agenda.TypeEducativa, membership.RoleEditor, false},
		{agenda.TypeColaborativa, membership.RoleEditor, true},
		{agenda.TypeColaborativa, membership.RoleViewer, true},
		{agenda.TypeColaborativa, membership.RoleChief, false},
		{agenda.TypePersonal, membership.RoleViewer, false},
		{agenda.TypeLaboral, membership.RoleOwner, false},
	}
	for _, tt := range tests {
		if got := RoleLegalFor(tt.agendaType, tt.role); got != tt.want {
			t.Errorf("RoleLegalFor(%s, %s) = %v, want %v", tt.agendaType, tt.role, got, tt.want)
		}
	}
}
