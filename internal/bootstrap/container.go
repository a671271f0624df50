package bootstrap

import (
	"context"
	"log"

	"notesync-be/internal/config"
	"notesync-be/internal/controller"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/repository/localfile"
	"notesync-be/internal/service"
	"notesync-be/internal/store"
	"notesync-be/internal/websocket"
	"notesync-be/pkg/annotator"
	pktNats "notesync-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	FolderController controller.IFolderController
	ConfigController controller.IConfigController

	// Background services (exposed for main.go to run)
	SyncService service.ISyncService

	// WebSockets
	WebSocketHub *websocket.Hub

	// System logger, shared with the HTTP error middleware
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Change feed (in-process) + optional NATS mirror
	watermillLogger := watermill.NewStdLogger(false, false)
	feed := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		}
	}

	// 3. Persistence adapter: local fallback first, remote after a
	// successful credential restore or a /config/v1/remote call.
	localNotes := localfile.NewNoteCollection(cfg.Store.NotesFile)
	adapter := store.NewAdapter(
		localNotes,
		store.NewGormDialer(cfg.Database.Connection),
		cfg.Store.CredentialsFile,
		feed,
		natsPub,
		sysLogger,
	)
	adapter.Restore(context.Background())

	if natsSub != nil {
		durable := "notesync-" + uuid.NewString()[:8]
		if err := natsSub.SubscribeNoteChanges(durable, adapter.HandleRemoteChange); err != nil {
			log.Printf("[WARN] Failed to subscribe to NATS note changes: %v", err)
		}
	}

	// 4. Redis (optional, cross-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/snapshots.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	syncService := service.NewSyncService(adapter, wsHub, sysLogger)
	noteService := service.NewNoteService(adapter)
	configService := service.NewConfigService(adapter, syncService)

	gemini := annotator.NewGeminiAnnotator(cfg.Keys.GoogleGemini, cfg.Ai.Model)
	annotationService := service.NewAnnotationService(adapter, gemini)

	// 7. Controllers
	return &Container{
		NoteController:   controller.NewNoteController(noteService, annotationService),
		FolderController: controller.NewFolderController(noteService),
		ConfigController: controller.NewConfigController(configService),

		SyncService:  syncService,
		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
