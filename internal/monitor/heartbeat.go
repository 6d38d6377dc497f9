package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Heartbeat periodically logs a structured liveness entry
type Heartbeat struct {
	cron        *cron.Cron
	logger      *zap.Logger
	service     string
	environment string
	startedAt   time.Time
}

// NewHeartbeat schedules the heartbeat job; schedule accepts cron specs and descriptors like "@every 5m"
func NewHeartbeat(schedule, service, environment string, logger *zap.Logger) (*Heartbeat, error) {
	h := &Heartbeat{
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		logger:      logger,
		service:     service,
		environment: environment,
		startedAt:   time.Now(),
	}

	if _, err := h.cron.AddFunc(schedule, h.Beat); err != nil {
		return nil, fmt.Errorf("schedule heartbeat %q: %w", schedule, err)
	}

	return h, nil
}

// Beat writes a single heartbeat entry
func (h *Heartbeat) Beat() {
	h.logger.Info("Heartbeat",
		zap.String("service", h.service),
		zap.String("environment", h.environment),
		zap.String("run_id", uuid.New().String()),
		zap.Duration("uptime", time.Since(h.startedAt)),
		zap.String("status", "healthy"),
	)
}

func (h *Heartbeat) Start() {
	h.cron.Start()
}

// Stop halts scheduling and waits for a running beat or ctx, whichever comes first
func (h *Heartbeat) Stop(ctx context.Context) {
	select {
	case <-h.cron.Stop().Done():
	case <-ctx.Done():
	}
}
