// Package grpcserver serves the standard gRPC health protocol for the
// service. Probes see SERVING while the job store answers pings.
package grpcserver

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// JobsService is the service name reported alongside the overall status.
const JobsService = "dwa.JobsService"

// DefaultProbeInterval is how often the store is pinged.
const DefaultProbeInterval = 15 * time.Second

// Pinger is anything whose liveness can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health tracks store liveness and publishes it through a health server.
type Health struct {
	srv      *health.Server
	store    Pinger
	interval time.Duration
}

// NewHealth returns a Health probing store every interval. Both statuses
// start as NOT_SERVING until the first successful probe.
func NewHealth(store Pinger, interval time.Duration) *Health {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	h := &Health{srv: health.NewServer(), store: store, interval: interval}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register attaches the health service to s.
func (h *Health) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.srv)
}

// Server exposes the underlying health server.
func (h *Health) Server() healthpb.HealthServer {
	return h.srv
}

// Run probes until ctx is cancelled, then marks everything NOT_SERVING.
func (h *Health) Run(ctx context.Context) {
	h.Probe(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Probe pings the store once and updates both statuses.
func (h *Health) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		slog.Warn("health probe failed", "err", err)
		h.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	h.set(healthpb.HealthCheckResponse_SERVING)
}

func (h *Health) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.srv.SetServingStatus("", status)
	h.srv.SetServingStatus(JobsService, status)
}
