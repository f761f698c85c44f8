// cmd/main.go
package main

import (
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/agendly/agenda-service/internal/app/agendaerr"
	"github.com/agendly/agenda-service/internal/app/commands"
	"github.com/agendly/agenda-service/internal/app/queries"
	"github.com/agendly/agenda-service/internal/config"
	"github.com/agendly/agenda-service/internal/infra/notifyamqp"
	"github.com/agendly/agenda-service/internal/infra/notifykafka"
	"github.com/agendly/agenda-service/internal/infra/postgres"
	"github.com/agendly/agenda-service/internal/ports/notify"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Engine bundles the wired command handlers and queries. The host API
// layer (whatever transport the deployment uses) mounts these; no
// routing lives in this service.
type Engine struct {
	CreateEvent     *commands.CreateEventCmd
	UpdateEvent     *commands.UpdateEventCmd
	DeleteEvent     *commands.DeleteEventCmd
	TransitionEvent *commands.TransitionEventCmd
	AddMembership   *commands.AddMembershipCmd
	ChangeRole      *commands.ChangeRoleCmd
	RemoveMember    *commands.RemoveMemberCmd
	ListEvents      *queries.ListEventsQuery
}

// MapError is the translation the mounting transport passes handler
// errors through before returning them to clients.
func (e *Engine) MapError(err error) error {
	return agendaerr.MapError(err)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.GetDBURL())
	if err != nil {
		log.Fatalf("failed to open postgres db: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping postgres db: %v", err)
	}
	defer db.Close()

	agendaStore := postgres.NewPostgresAgendaStore(db)
	membershipStore := postgres.NewPostgresMemberShipStore(db)
	eventStore := postgres.NewPostgresEventStore(db)
	userStore := postgres.NewPostgresUserStore(db)
	auditStore := postgres.NewPostgresAuditStore(db)
	txManager := postgres.NewTxManager(db)

	// Notifications go to the job queue; the same payload is mirrored
	// onto the event bus when one is configured.
	sinks := notify.Fanout{}
	rabbit, err := notifyamqp.NewRabbitNotifier(cfg.GetRabbitMQURL(), cfg.NOTIFY_QUEUE)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer rabbit.Close()
	sinks = append(sinks, rabbit)

	if cfg.KAFKA_BROKER != "" && cfg.KAFKA_TOPIC != "" {
		bus := notifykafka.NewPublisher(cfg.KAFKA_BROKER, cfg.KAFKA_TOPIC)
		defer bus.Close()
		sinks = append(sinks, bus)
	}

	engine := &Engine{
		CreateEvent:     commands.NewCreateEventCmd(agendaStore, membershipStore, eventStore, auditStore, sinks),
		UpdateEvent:     commands.NewUpdateEventCmd(agendaStore, membershipStore, eventStore, auditStore, sinks),
		DeleteEvent:     commands.NewDeleteEventCmd(agendaStore, membershipStore, eventStore, auditStore, sinks),
		TransitionEvent: commands.NewTransitionEventCmd(agendaStore, membershipStore, eventStore, auditStore, txManager, sinks),
		AddMembership:   commands.NewAddMembershipCmd(userStore, agendaStore, membershipStore, auditStore, sinks),
		ChangeRole:      commands.NewChangeRoleCmd(agendaStore, membershipStore, auditStore, sinks),
		RemoveMember:    commands.NewRemoveMemberCmd(agendaStore, membershipStore, auditStore, sinks),
		ListEvents:      queries.NewListEventsQuery(agendaStore, membershipStore, eventStore),
	}
	_ = engine

	log.Println("agenda engine wired and ready. Press Ctrl+C to stop")

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
	received := <-stopSignal
	log.Printf("Received signal: %v. Shutting down...", received)
}
