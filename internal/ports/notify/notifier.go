// internal/ports/notify/notifier.go
package notify

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Notification types emitted by the engine.
const (
	TypeEventCreated  = "event.created"
	TypeEventUpdated  = "event.updated"
	TypeEventDeleted  = "event.deleted"
	TypeEventApproved = "event.approved"
	TypeEventRejected = "event.rejected"
	TypeRoleChanged   = "member.role_changed"
	TypeMemberRemoved = "member.removed"
	TypeMemberInvited = "member.invited"
)

type Notification struct {
	Recipients []uuid.UUID    `json:"recipients"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
}

// Notifier is the fire-and-forget notification sink. A failed publish
// must never roll back the mutation that triggered it; callers log and
// move on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Fanout delivers every notification to all sinks. Individual sink
// failures are logged and do not stop the others.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) error {
	for _, sink := range f {
		if err := sink.Notify(ctx, n); err != nil {
			log.Printf("notify: sink failed for %s: %v", n.Type, err)
		}
	}
	return nil
}
