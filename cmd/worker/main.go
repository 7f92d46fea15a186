// Command worker runs the daily update on a cron schedule and serves
// Prometheus metrics. Deployments that already have an external scheduler
// should run the dailyupdate command directly instead.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/aggregator"
	"github.com/Fcontice/HomeRunDerby2.0/internal/cache"
	"github.com/Fcontice/HomeRunDerby2.0/internal/client"
	"github.com/Fcontice/HomeRunDerby2.0/internal/config"
	"github.com/Fcontice/HomeRunDerby2.0/internal/repository"
	"github.com/Fcontice/HomeRunDerby2.0/internal/scheduler"
)

func main() {
	cfg := config.MustLoad()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.AppEnv).
		Str("schedule", cfg.DailyUpdateCron).
		Msg("Starting home run derby worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	mlb := client.NewClient(cfg.MLBAPIBaseURL, cfg.MLBAPITimeout)

	if cfg.RedisEnabled() {
		redisCache, err := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			mlb.UseBoxScoreCache(redisCache, cfg.BoxScoreCacheTTL)
		}
	}

	go startMetricsServer(cfg.MetricsPort)

	agg := aggregator.New(mlb, db.Players, db.DailyStats)
	sched := scheduler.New(agg, cfg.DefaultSeasonYear, cfg.DailyUpdateCron)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer sched.Stop()

	<-ctx.Done()
	log.Info().Msg("Worker shutting down")
}

func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("Metrics server listening")

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
