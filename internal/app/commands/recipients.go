// internal/app/commands/recipients.go
package commands

import (
	"github.com/agendly/agenda-service/internal/domain/agenda"
	"github.com/agendly/agenda-service/internal/domain/membership"
	"github.com/google/uuid"
)

// agendaRecipients builds the notification recipient list for a
// mutation: the owner plus every member, minus the actor.
func agendaRecipients(a *agenda.Agenda, members []membership.MemberShip, actorID uuid.UUID) []uuid.UUID {
	recipients := make([]uuid.UUID, 0, len(members)+1)
	if a.OwnerUserID != actorID {
		recipients = append(recipients, a.OwnerUserID)
	}
	for _, m := range members {
		if m.UserID == actorID {
			continue
		}
		recipients = append(recipients, m.UserID)
	}
	return recipients
}
