// internal/domain/event/errors.go
package event

import "errors"

var (
	// ErrNotPending protects the state machine. Only pending events can
	// be approved or rejected; repeating a transition fails here.
	ErrNotPending = errors.New("event is not pending approval")
)
