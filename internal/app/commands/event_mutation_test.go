package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agendly/agenda-service/internal/domain/agenda"
	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/google/uuid"
)

func TestUpdateEvent(t *testing.T) {
	alice := uuid.New() // owner
	bob := uuid.New()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	seedEvent := func(f *fixture, a *agenda.Agenda, creator uuid.UUID, status event.Status) *event.Event {
		ev := &event.Event{
			EventID:       uuid.New(),
			AgendaID:      a.AgendaID,
			CreatorUserID: creator,
			Title:         "Original",
			StartTime:     day.Add(9 * time.Hour),
			EndTime:       day.Add(10 * time.Hour),
			Status:        status,
			CreatedAt:     day,
			UpdatedAt:     day,
		}
		_ = f.events.CreateEvent(context.Background(), ev)
		return ev
	}

	t.Run("employee edits own pending event", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeLaboral, alice)
		f.addMember(a, bob, membership.RoleEmployee)
		ev := seedEvent(f, a, bob, event.StatusPendingApproval)
		cmd := NewUpdateEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		got, err := cmd.Handle(context.Background(), UpdateEventParams{
			EventID:         ev.EventID,
			RequesterUserID: bob,
			Title:           "Reworked",
			StartTime:       ev.StartTime,
			EndTime:         ev.EndTime,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "Reworked" {
			t.Errorf("title = %q, want Reworked", got.Title)
		}
		if len(f.notifier.Sent) != 1 || f.notifier.Sent[0].Type != notify.TypeEventUpdated {
			t.Error("expected one event.updated notification")
		}
	})

	t.Run("employee loses edit rights once confirmed", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeLaboral, alice)
		f.addMember(a, bob, membership.RoleEmployee)
		ev := seedEvent(f, a, bob, event.StatusConfirmed)
		cmd := NewUpdateEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if _, err := cmd.Handle(context.Background(), UpdateEventParams{
			EventID:         ev.EventID,
			RequesterUserID: bob,
			Title:           "Sneaky Edit",
			StartTime:       ev.StartTime,
			EndTime:         ev.EndTime,
		}); !errors.Is(err, domainErr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("chief edits a confirmed event of someone else", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeLaboral, alice)
		f.addMember(a, bob, membership.RoleChief)
		ev := seedEvent(f, a, alice, event.StatusConfirmed)
		cmd := NewUpdateEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if _, err := cmd.Handle(context.Background(), UpdateEventParams{
			EventID:         ev.EventID,
			RequesterUserID: bob,
			Title:           "Rescheduled",
			StartTime:       ev.StartTime,
			EndTime:         ev.EndTime,
		}); err != nil {
			t.Errorf("chief edit should succeed, got %v", err)
		}
	})

	t.Run("inverted range is rejected before any lookup", func(t *testing.T) {
		f := newFixture()
		cmd := NewUpdateEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if _, err := cmd.Handle(context.Background(), UpdateEventParams{
			EventID:         uuid.New(),
			RequesterUserID: alice,
			StartTime:       day.Add(11 * time.Hour),
			EndTime:         day.Add(10 * time.Hour),
		}); !errors.Is(err, domainErr.ErrInvalidTimeRange) {
			t.Errorf("got %v, want ErrInvalidTimeRange", err)
		}
	})
}

func TestDeleteEvent(t *testing.T) {
	alice := uuid.New() // owner
	bob := uuid.New()
	carol := uuid.New()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	seedEvent := func(f *fixture, a *agenda.Agenda, creator uuid.UUID) *event.Event {
		ev := &event.Event{
			EventID:       uuid.New(),
			AgendaID:      a.AgendaID,
			CreatorUserID: creator,
			Title:         "Doomed",
			StartTime:     day.Add(9 * time.Hour),
			EndTime:       day.Add(10 * time.Hour),
			Status:        event.StatusConfirmed,
			CreatedAt:     day,
			UpdatedAt:     day,
		}
		_ = f.events.CreateEvent(context.Background(), ev)
		return ev
	}

	t.Run("editor deletes own event only", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeColaborativa, alice)
		f.addMember(a, bob, membership.RoleEditor)
		f.addMember(a, carol, membership.RoleEditor)
		own := seedEvent(f, a, bob)
		other := seedEvent(f, a, carol)
		cmd := NewDeleteEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if err := cmd.Handle(context.Background(), DeleteEventParams{
			EventID: own.EventID, RequesterUserID: bob,
		}); err != nil {
			t.Fatalf("own delete should succeed, got %v", err)
		}
		if _, err := f.events.GetEventByID(context.Background(), own.EventID); !errors.Is(err, domainErr.ErrEventNotFound) {
			t.Error("event should be gone")
		}

		if err := cmd.Handle(context.Background(), DeleteEventParams{
			EventID: other.EventID, RequesterUserID: bob,
		}); !errors.Is(err, domainErr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("viewer may not delete anything", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeColaborativa, alice)
		f.addMember(a, bob, membership.RoleViewer)
		ev := seedEvent(f, a, alice)
		cmd := NewDeleteEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if err := cmd.Handle(context.Background(), DeleteEventParams{
			EventID: ev.EventID, RequesterUserID: bob,
		}); !errors.Is(err, domainErr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("owner deletes anything and everyone else hears", func(t *testing.T) {
		f := newFixture()
		a := f.addAgenda(agenda.TypeEducativa, alice)
		f.addMember(a, bob, membership.RoleProfessor)
		ev := seedEvent(f, a, bob)
		cmd := NewDeleteEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if err := cmd.Handle(context.Background(), DeleteEventParams{
			EventID: ev.EventID, RequesterUserID: alice,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.notifier.Sent) != 1 || f.notifier.Sent[0].Type != notify.TypeEventDeleted {
			t.Fatal("expected one event.deleted notification")
		}
		got := f.notifier.Sent[0].Recipients
		if len(got) != 1 || got[0] != bob {
			t.Errorf("recipients = %v, want [professor]", got)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture()
		cmd := NewDeleteEventCmd(f.agendas, f.memberships, f.events, f.audits, f.notifier)

		if err := cmd.Handle(context.Background(), DeleteEventParams{
			EventID: uuid.New(), RequesterUserID: alice,
		}); !errors.Is(err, domainErr.ErrEventNotFound) {
			t.Errorf("got %v, want ErrEventNotFound", err)
		}
	})
}
