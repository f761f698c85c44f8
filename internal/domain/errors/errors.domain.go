// internal/domain/errors/errors.domain.go
package errors

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Standard Sentinel Errors
// These allow the transport layer (gRPC/HTTP) to map internal logic
// to status codes (e.g., ErrForbidden -> PermissionDenied).

var (
	// Not found
	ErrAgendaNotFound     = errors.New("agenda not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMembershipNotFound = errors.New("membership not found")

	// Forbidden. Denials carry the specific rule via ForbiddenError.
	ErrForbidden = errors.New("operation not permitted")

	// Conflict
	ErrScheduleConflict    = errors.New("time range conflicts with existing events")
	ErrStaleTransition     = errors.New("state changed since it was read")
	ErrDuplicateMembership = errors.New("user is already a member of this agenda")

	// Validation
	ErrInvalidTimeRange = errors.New("event start must be before event end")
	ErrRoleNotAllowed   = errors.New("role is not legal for this agenda type")
	ErrSelfTarget       = errors.New("cannot target your own membership")
	ErrInvalidInput     = errors.New("invalid input arguments")
)

// ForbiddenError is a denial that names the rule that failed, so the
// caller can show the user why ("employee cannot edit approved event")
// instead of a bare 403.
type ForbiddenError struct {
	Rule string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Rule
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

func Forbidden(format string, args ...any) error {
	return &ForbiddenError{Rule: fmt.Sprintf(format, args...)}
}

// ConflictingEvent is the slice of an event the caller is allowed to see
// when creation fails: enough to display the clash, nothing more.
type ConflictingEvent struct {
	EventID   uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// ConflictError carries the full list of events overlapping a candidate
// time range. Creation is refused with this error rather than failing
// silently.
type ConflictError struct {
	Conflicts []ConflictingEvent
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting event(s)", ErrScheduleConflict, len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}
