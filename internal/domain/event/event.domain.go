// internal/domain/event/event.domain.go
package event

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusConfirmed       Status = "confirmed"
	StatusRejected        Status = "rejected"
)

type Event struct {
	EventID       uuid.UUID
	AgendaID      uuid.UUID
	CreatorUserID uuid.UUID
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status

	IsPrivate bool
	// VisibleToStudents is meaningful only in educativa agendas.
	VisibleToStudents bool
	// SharedWith is the explicit per-event allow-list of extra viewers,
	// disjoint from role-based visibility.
	SharedWith []uuid.UUID

	ApprovedByUserID *uuid.UUID // Nullable; set on confirm only
	ApprovedAt       *time.Time // Nullable
	RejectionReason  *string    // Nullable.. why did we say no?

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Event) IsSharedWith(userID uuid.UUID) bool {
	for _, id := range e.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidTimeRange reports whether the event occupies a positive span.
func (e *Event) ValidTimeRange() bool {
	return e.StartTime.Before(e.EndTime)
}

// Overlaps reports whether the event's [start, end) range intersects the
// candidate [start, end) range. Touching at a single instant does not
// count as overlap; the half-open convention is applied everywhere the
// engine tests for conflicts.
func (e *Event) Overlaps(start, end time.Time) bool {
	return start.Before(e.EndTime) && e.StartTime.Before(end)
}

// Approve and Reject guard the approval state machine:
//
//	PENDING_APPROVAL
//	   ├── approve → CONFIRMED
//	   └── reject  → REJECTED
//
// Confirmed and rejected are terminal for the approval workflow. Further
// edits are a permission question, not a lifecycle one.

func (e *Event) Approve(approverID uuid.UUID, at time.Time) error {
	if e.Status != StatusPendingApproval {
		return ErrNotPending
	}
	e.Status = StatusConfirmed
	e.ApprovedByUserID = &approverID
	e.ApprovedAt = &at
	e.UpdatedAt = at
	return nil
}

func (e *Event) Reject(reviewerID uuid.UUID, reason string, at time.Time) error {
	if e.Status != StatusPendingApproval {
		return ErrNotPending
	}
	e.Status = StatusRejected
	e.RejectionReason = &reason
	e.UpdatedAt = at
	return nil
}
