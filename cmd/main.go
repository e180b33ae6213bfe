// dwa-backend
//
// Job board backend. Pulls postings from the WeDataTools jobs API on a cron
// schedule, classifies each one by NOC occupation and NAICS sector, and
// upserts it into PostgreSQL keyed on its URL. Serves:
//   - /api/jobs  listings, category aggregation, search, map pins
//   - /api/auth  registration, login and token checks
//   - /health    liveness for HTTP probes
//
// A gRPC health endpoint on GRPC_PORT reflects database reachability.
// With REDIS_URL set, runs are locked across instances, each run publishes
// EVENT_JOBS_INGESTED, and the category listing is cached.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"dwa/backend/internal/api"
	"dwa/backend/internal/auth"
	"dwa/backend/internal/broker"
	"dwa/backend/internal/config"
	"dwa/backend/internal/db"
	"dwa/backend/internal/grpcserver"
	"dwa/backend/internal/ingest"
	"dwa/backend/internal/repository"
	"dwa/backend/internal/scheduler"
)

const (
	serviceName = "dwa-backend"
	version     = "1.0.0"

	// runLockTTL bounds how long a crashed instance can hold the run lock.
	runLockTTL = 15 * time.Minute
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[%s] Config error: %v", serviceName, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Printf("[%s] Connecting to PostgreSQL…", serviceName)
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[%s] PostgreSQL: %v", serviceName, err)
	}
	defer pool.Close()
	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("[%s] Migrations: %v", serviceName, err)
	}
	log.Printf("[%s] PostgreSQL connected ✓", serviceName)

	jobs := repository.NewJobRepository(pool)
	users := repository.NewUserRepository(pool)

	// ── Redis (optional) ─────────────────────────────────────────────────────
	ingestCfg := ingest.Config{
		PageSize: cfg.IngestPageSize,
		MaxPages: cfg.IngestMaxPages,
		Workers:  cfg.IngestWorkers,
	}
	var cache api.CategoryCache

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[%s] Redis: %v", serviceName, err)
	}
	if rdb != nil {
		defer rdb.Close()
		categoryCache := broker.NewCategoryCache(rdb, cfg.CategoryCacheTTL)
		cache = categoryCache
		ingestCfg.Locker = broker.NewRunLock(rdb, runLockTTL)
		ingestCfg.Notifier = broker.NewEvents(rdb, categoryCache)
		log.Printf("[%s] Redis connected ✓", serviceName)
	} else {
		log.Printf("[%s] REDIS_URL not set, running without run lock, events or cache", serviceName)
	}

	// ── Ingestion ────────────────────────────────────────────────────────────
	if cfg.JobsAPIKey == "" {
		log.Printf("[%s] WEDATATOOLS_API_KEY not set, every ingestion run will fail", serviceName)
	}
	fetcher := ingest.NewFetcher(cfg.JobsAPIURL, cfg.JobsAPIKey, cfg.FetchTimeout)
	pipeline := ingest.NewPipeline(fetcher, jobs, ingestCfg)

	sched := scheduler.New(pipeline, cfg.IngestCron, cfg.IngestOnStartup)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[%s] Scheduler: %v", serviceName, err)
	}

	// ── gRPC health ──────────────────────────────────────────────────────────
	grpcSrv := grpc.NewServer()
	healthSvc := grpcserver.NewHealth(jobs, grpcserver.DefaultProbeInterval)
	healthSvc.Register(grpcSrv)
	go healthSvc.Run(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatalf("[%s] gRPC listen: %v", serviceName, err)
	}
	go func() {
		log.Printf("[%s] gRPC health listening on :%s", serviceName, cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			slog.Error("gRPC server stopped", "err", err)
		}
	}()

	// ── HTTP server ──────────────────────────────────────────────────────────
	router := api.NewRouter(api.Options{
		Jobs:      jobs,
		Ingester:  pipeline,
		Auth:      auth.NewService(users, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)),
		Cache:     cache,
		StaticDir: cfg.StaticDir,
		Service:   serviceName,
		Version:   version,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// The manual fetch trigger holds the request open for a whole run.
		WriteTimeout: cfg.FetchTimeout*time.Duration(cfg.IngestMaxPages) + 30*time.Second,
	}

	go func() {
		log.Printf("[%s] v%s listening on :%s", serviceName, version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[%s] HTTP server error: %v", serviceName, err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("[%s] Shutting down…", serviceName)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[%s] Shutdown error: %v", serviceName, err)
	}
	grpcSrv.GracefulStop()
	cancel()
	sched.Stop()
	log.Printf("[%s] Stopped.", serviceName)
}
