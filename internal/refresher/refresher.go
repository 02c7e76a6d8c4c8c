package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one unit of refresh work.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc is a function adapter for Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Config holds refresher configuration.
type Config struct {
	Interval time.Duration // Time between cycles (default: 12h)
	Timeout  time.Duration // Per-cycle timeout (default: 5m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 12 * time.Hour,
		Timeout:  5 * time.Minute,
	}
}

// Stats holds refresher counters.
type Stats struct {
	Cycles  int64
	Errors  int64
	LastRun time.Time
	LastErr string
}

// Refresher runs a job immediately on start and then on a fixed interval.
type Refresher struct {
	cfg    Config
	job    Job
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	stats Stats
}

// New creates a new Refresher.
func New(cfg Config, job Job, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Refresher{
		cfg:    cfg,
		job:    job,
		logger: logger,
	}
}

// Start begins the refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("refresher started",
		"interval", r.cfg.Interval,
		"timeout", r.cfg.Timeout,
	)

	return nil
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns current counters.
func (r *Refresher) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// run is the main refresh loop.
func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	r.runCycle()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runCycle()
		}
	}
}

// runCycle executes the job once under the configured timeout.
func (r *Refresher) runCycle() {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	err := r.job.Run(ctx)

	r.mu.Lock()
	r.stats.Cycles++
	r.stats.LastRun = start
	if err != nil {
		r.stats.Errors++
		r.stats.LastErr = err.Error()
	} else {
		r.stats.LastErr = ""
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("refresh cycle failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	r.logger.Info("refresh cycle complete", "duration", time.Since(start))
}
