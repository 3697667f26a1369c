package bootstrap

import (
	"context"
	"fmt"
	"log"

	"notedeck-be/internal/config"
	"notedeck-be/internal/controller"
	"notedeck-be/internal/pkg/logger"
	"notedeck-be/internal/repository/contract"
	"notedeck-be/internal/repository/implementation"
	"notedeck-be/internal/repository/memory"
	"notedeck-be/internal/service"
	"notedeck-be/internal/websocket"
	pktNats "notedeck-be/pkg/nats"
	"notedeck-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	NoteController    controller.INoteController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Storage backend (persistence adapter), selected by config. The
	// collection store works unmodified against either.
	var noteRepo contract.NoteRepository
	switch cfg.Storage.Driver {
	case "badger":
		db, err := implementation.OpenBadger(cfg.Storage.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		noteRepo = implementation.NewBadgerNoteRepository(db)
		log.Printf("[INFO] Using Storage Driver: BADGER (%s)", cfg.Storage.BadgerPath)
	case "postgres":
		gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		noteRepo = implementation.NewPostgresNoteRepository(gormDB)
		log.Printf("[INFO] Using Storage Driver: POSTGRES")
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional; note events are best-effort)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (optional; only needed for multi-instance WebSocket fan-out)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Session state + services
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	publisherService := service.NewPublisherService(cfg.App.NoteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.NoteEventsTopic,
		wsHub,
		wsLogger,
	)

	collectionService := service.NewCollectionService(
		noteRepo,
		sessionRepo,
		publisherService,
		natsPub,
		sysLogger,
	)

	return &Container{
		NoteController:    controller.NewNoteController(collectionService),
		SessionController: controller.NewSessionController(collectionService),
		ConsumerService:   consumerService,
		WebSocketHub:      wsHub,
		Logger:            sysLogger,
	}, nil
}
