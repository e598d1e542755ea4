package worker

import (
	"context"
	"time"

	"npofeed/logger"
)

// Runner is one unit of periodic work, typically the feed pipeline
type Runner interface {
	Run() error
}

// Worker re-runs the pipeline at a fixed interval until its context is
// cancelled. The first run happens immediately.
type Worker struct {
	ctx      context.Context
	runner   Runner
	interval time.Duration
	log      *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(ctx context.Context, runner Runner, interval time.Duration) *Worker {
	return &Worker{
		ctx:      ctx,
		runner:   runner,
		interval: interval,
		log:      logger.ForWorker(),
	}
}

// Start runs the periodic loop. It blocks until the context is cancelled
// and always returns nil; per-run failures are logged, not propagated.
func (w *Worker) Start() error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce()

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return nil
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// runOnce executes a single pipeline run with success/failure logging
func (w *Worker) runOnce() {
	start := time.Now()

	if err := w.runner.Run(); err != nil {
		w.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Feed update failed")
		return
	}

	w.log.Info().Dur("elapsed", time.Since(start)).Msg("Feed updated successfully")
}
