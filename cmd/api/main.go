package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/edsu-house/edsu-backend/api/controllers"
	"github.com/edsu-house/edsu-backend/api/routes"
	"github.com/edsu-house/edsu-backend/internal/articles"
	"github.com/edsu-house/edsu-backend/internal/artists"
	"github.com/edsu-house/edsu-backend/internal/auth"
	"github.com/edsu-house/edsu-backend/internal/beem"
	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/internal/mediatbyt"
	"github.com/edsu-house/edsu-backend/internal/programs"
	"github.com/edsu-house/edsu-backend/internal/uimedia"
	"github.com/edsu-house/edsu-backend/internal/uploads"
	"github.com/edsu-house/edsu-backend/internal/users"
	"github.com/edsu-house/edsu-backend/pkg/config"
	"github.com/edsu-house/edsu-backend/pkg/db"
	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/metrics"
	"github.com/edsu-house/edsu-backend/pkg/migrate"
	"github.com/edsu-house/edsu-backend/pkg/redis"
	"github.com/edsu-house/edsu-backend/pkg/storage/minio"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storageClient, err := minio.New(context.Background(), cfg.Minio, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	mediaRepo := media.NewRepository(gormDB)
	artistRepo := artists.NewRepository(gormDB)
	articleRepo := articles.NewRepository(gormDB)
	programRepo := programs.NewRepository(gormDB)
	bookRepo := beem.NewRepository(gormDB)
	uiMediaRepo := uimedia.NewRepository(gormDB)
	tbytRepo := mediatbyt.NewRepository(gormDB)

	authService, err := auth.NewService(userRepo, cfg.JWT)
	requireService(logg, "auth", err)
	userService, err := users.NewService(userRepo)
	requireService(logg, "users", err)
	mediaService, err := media.NewService(mediaRepo, storageClient)
	requireService(logg, "media", err)
	artistService, err := artists.NewService(artistRepo, mediaRepo)
	requireService(logg, "artists", err)
	articleService, err := articles.NewService(articleRepo)
	requireService(logg, "articles", err)
	programService, err := programs.NewService(programRepo, articleRepo)
	requireService(logg, "programs", err)
	bookService, err := beem.NewService(bookRepo)
	requireService(logg, "be-em", err)
	uiMediaService, err := uimedia.NewService(uiMediaRepo, storageClient)
	requireService(logg, "ui-media", err)
	tbytService, err := mediatbyt.NewService(tbytRepo)
	requireService(logg, "media-tbyt", err)
	uploadService, err := uploads.NewService(storageClient, mediaRepo)
	requireService(logg, "uploads", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	handler := routes.NewRouter(cfg, logg, routes.Services{
		Auth:      authService,
		Users:     userService,
		Media:     mediaService,
		Artists:   artistService,
		Articles:  articleService,
		Programs:  programService,
		Books:     bookService,
		UIMedia:   uiMediaService,
		MediaTBYT: tbytService,
		Uploads:   uploadService,
	}, routes.Dependencies{
		Redis:       redisClient,
		HTTPMetrics: httpMetrics,
		Registry:    prometheus.DefaultGatherer,
		Readiness: []controllers.DependencyCheck{
			{Name: "postgres", Pinger: dbClient},
			{Name: "redis", Pinger: redisClient},
			{Name: "minio", Pinger: storageClient},
		},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(logg.WithField(context.Background(), "service", name), "failed to create service", err)
		os.Exit(1)
	}
}
