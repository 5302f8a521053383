package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"deskchat-server/internal/config"
	"deskchat-server/internal/domain/assistant"
	"deskchat-server/internal/domain/media"
	"deskchat-server/internal/domain/message"
	"deskchat-server/internal/domain/presence"
	"deskchat-server/internal/infrastructure/database"
	"deskchat-server/internal/infrastructure/feed"
	"deskchat-server/internal/infrastructure/llm"
	"deskchat-server/internal/infrastructure/logger"
	repo "deskchat-server/internal/infrastructure/repository/message"
	"deskchat-server/internal/infrastructure/search"
	"deskchat-server/internal/infrastructure/storage"
	"deskchat-server/internal/interfaces/httpserver"
	"deskchat-server/internal/interfaces/httpserver/handlers"
	"deskchat-server/internal/interfaces/httpserver/routes"
	"deskchat-server/internal/interfaces/wsserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	hub        *wsserver.Hub
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, hub *wsserver.Hub, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		hub:        hub,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	go a.hub.Run(ctx)
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	blobStorage, err := storage.NewS3Storage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize blob storage")
	}

	messageRepository := repo.NewPostgresRepository(db)
	messageService := message.NewService(messageRepository, cfg.HistoryReplayLimit, log)
	registry := presence.NewRegistry()
	mediaService := media.NewService(blobStorage, cfg.MaxUploadBytes, log)

	completer := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.UpstreamTimeout)
	searchers := map[assistant.Provider]assistant.Searcher{
		assistant.ProviderGoogle: search.NewSerperClient(cfg.SerperAPIKey, cfg.UpstreamTimeout, log),
		assistant.ProviderTavily: search.NewTavilyClient(cfg.TavilyAPIKey, cfg.UpstreamTimeout, log),
	}
	assistantService := assistant.NewService(completer, searchers, cfg.LLMModel, log)

	feedClient := feed.NewClient(cfg.UpstreamTimeout, log)

	hub := wsserver.NewHub(messageService, registry, cfg.UpstreamTimeout, log)

	handlerProvider := handlers.NewProvider(mediaService, messageService, assistantService, feedClient, log)
	routeProvider := routes.NewProvider(handlerProvider, hub)

	httpServer := httpserver.New(cfg, log, handlerProvider, routeProvider, blobStorage.Health)
	app := NewApplication(httpServer, hub, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
