package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	FinishedMaxAge time.Duration
	ActiveMaxAge   time.Duration
	logger         zerolog.Logger
}

const (
	DefaultInterval       = time.Hour
	DefaultFinishedMaxAge = time.Hour
	DefaultActiveMaxAge   = 24 * time.Hour
)

// NewWorker builds a cleanup worker. Non-positive durations fall back to the
// defaults.
func NewWorker(sm *game.SessionManager, interval, finishedMaxAge, activeMaxAge time.Duration, logger zerolog.Logger) *Worker {
	logger = logger.With().Str("component", "cleanup").Logger()
	if interval <= 0 {
		logger.Warn().Dur("interval", interval).Dur("default", DefaultInterval).Msg("invalid cleanup interval, using default")
		interval = DefaultInterval
	}
	if finishedMaxAge <= 0 {
		finishedMaxAge = DefaultFinishedMaxAge
	}
	if activeMaxAge <= 0 {
		activeMaxAge = DefaultActiveMaxAge
	}
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		FinishedMaxAge: finishedMaxAge,
		ActiveMaxAge:   activeMaxAge,
		logger:         logger,
	}
}

// Start runs one cleanup right away and then one per Interval until ctx is
// done. The returned channel is closed once the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runCleanup()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info().Msg("background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	w.logger.Info().Dur("interval", w.Interval).Msg("background worker started")
	return done
}

func (w *Worker) runCleanup() {
	removed := w.SessionManager.CleanupOldSessions(w.FinishedMaxAge, w.ActiveMaxAge)
	w.logger.Debug().Int("removed", removed).Msg("scheduled cleanup finished")
}
