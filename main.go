package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"nmalls-recorrencia/cache"
	"nmalls-recorrencia/config"
	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/metrics"
	"nmalls-recorrencia/routes"
	"nmalls-recorrencia/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("nmalls-recorrencia", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	if err := config.SeedAdmin(db, cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	var store cache.Store
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, response cache disabled")
		} else {
			defer client.Close()
			store = cache.NewRedisStore(client)
			logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Response cache enabled")
		}
	}

	m := metrics.New()

	lembretes := services.NewLembreteService(db, cfg.Reminder, services.NewNotifier(cfg.Reminder), m)
	scheduler, err := lembretes.StartScheduler()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start reminder scheduler")
	}

	r := routes.SetupRouter(cfg, db, store, m)
	if cfg.IsDevelopment() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down")
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
