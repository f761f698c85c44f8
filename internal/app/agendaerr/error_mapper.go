// internal/app/agendaerr/error_mapper.go
package agendaerr

import (
	stdErrors "errors"

	domainErr "github.com/agendly/agenda-service/internal/domain/errors"
	"github.com/agendly/agenda-service/internal/domain/event"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapError translates domain errors into transport-safe gRPC status
// errors. Lives in the application layer: the domain must not know
// about status codes, the transport must not contain business rules.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case stdErrors.Is(err, domainErr.ErrAgendaNotFound),
		stdErrors.Is(err, domainErr.ErrEventNotFound),
		stdErrors.Is(err, domainErr.ErrUserNotFound),
		stdErrors.Is(err, domainErr.ErrMembershipNotFound):
		return status.Error(codes.NotFound, err.Error())

	case stdErrors.Is(err, domainErr.ErrForbidden):
		// ForbiddenError carries the specific rule; intentional leakage
		// so the user learns why, not just that, they were denied.
		return status.Error(codes.PermissionDenied, err.Error())

	case stdErrors.Is(err, domainErr.ErrScheduleConflict),
		stdErrors.Is(err, domainErr.ErrDuplicateMembership):
		return status.Error(codes.AlreadyExists, err.Error())

	case stdErrors.Is(err, domainErr.ErrStaleTransition),
		stdErrors.Is(err, event.ErrNotPending):
		return status.Error(codes.FailedPrecondition, err.Error())

	case stdErrors.Is(err, domainErr.ErrInvalidTimeRange),
		stdErrors.Is(err, domainErr.ErrRoleNotAllowed),
		stdErrors.Is(err, domainErr.ErrSelfTarget),
		stdErrors.Is(err, domainErr.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	// Fallback (never leak internals)
	return status.Error(codes.Internal, "internal error")
}
