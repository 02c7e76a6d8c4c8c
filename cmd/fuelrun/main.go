package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/edwardmfho/fuelrun/internal/api"
	"github.com/edwardmfho/fuelrun/internal/archive"
	"github.com/edwardmfho/fuelrun/internal/config"
	"github.com/edwardmfho/fuelrun/internal/database"
	"github.com/edwardmfho/fuelrun/internal/gather"
	"github.com/edwardmfho/fuelrun/internal/refresher"
	"github.com/edwardmfho/fuelrun/internal/snapshot"
	"github.com/edwardmfho/fuelrun/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/fuelrun.yaml", "path to config file")
	update := flag.Bool("update", false, "fetch fresh data and write a new snapshot")
	daemon := flag.Bool("daemon", false, "run continuously, refreshing on an interval")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting fuelrun",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.BaseURL,
		"states", cfg.API.States,
		"snapshot_dir", cfg.Snapshot.Dir,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	store := snapshot.NewStore(cfg.Snapshot.Dir, logger)

	// The default mode reloads the most recent snapshot without touching
	// the network.
	if !*update && !*daemon {
		if err := reloadLatest(store, logger); err != nil {
			logger.Error("failed to reload snapshot", "error", err)
			os.Exit(1)
		}
		return
	}

	apiClient := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Authorization,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	var arch *archive.Archiver
	var archiver gather.Archiver
	if cfg.Archive.Enabled {
		logger.Info("connecting to archive database",
			"host", cfg.Archive.Postgres.Host,
			"port", cfg.Archive.Postgres.Port,
			"database", cfg.Archive.Postgres.Name,
		)

		pool, err := database.Connect(ctx, cfg.Archive.Postgres)
		if err != nil {
			logger.Error("failed to connect to archive database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		arch = archive.New(pool, logger)
		archiver = arch
		logger.Info("archive database connected")
	}

	svc := gather.New(apiClient, store, archiver, cfg.API.States, logger)

	if *update {
		result, err := svc.Run(ctx)
		if err != nil {
			logger.Error("gather run failed", "error", err)
			os.Exit(1)
		}
		logger.Info("snapshot written",
			"dir", result.Dir,
			"stations", result.Stations,
			"prices", result.Prices,
			"combined", result.Combined,
		)
		return
	}

	// Daemon mode: refresh on an interval and expose a health endpoint.
	ref := refresher.New(
		refresher.Config{
			Interval: cfg.Refresh.Interval,
			Timeout:  cfg.Refresh.Timeout,
		},
		refresher.JobFunc(func(ctx context.Context) error {
			_, err := svc.Run(ctx)
			return err
		}),
		logger,
	)

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(ref, store, arch),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	if err := ref.Start(ctx); err != nil {
		logger.Error("failed to start refresher", "error", err)
		os.Exit(1)
	}

	logger.Info("fuelrun running",
		"instance_id", cfg.Instance.ID,
		"interval", cfg.Refresh.Interval,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	ref.Stop(shutdownCtx)
	healthServer.Shutdown(shutdownCtx)

	logger.Info("fuelrun stopped")
}

// loadConfig reads the config file, falling back to pure defaults plus
// environment variables when the file does not exist.
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.LoadAndValidate(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("config file not found, using defaults", "path", path)
		cfg = config.Default()
		if verr := cfg.Validate(); verr != nil {
			return nil, verr
		}
		return cfg, nil
	}
	return cfg, err
}

// reloadLatest loads the most recent snapshot and reports its shape.
func reloadLatest(store *snapshot.Store, logger *slog.Logger) error {
	dir, err := store.LatestDir()
	if errors.Is(err, snapshot.ErrNoSnapshots) {
		return fmt.Errorf("no snapshots in %s, run with -update first", store.BaseDir())
	}
	if err != nil {
		return err
	}

	snap, err := store.Load(dir)
	if err != nil {
		return err
	}

	logger.Info("snapshot loaded",
		"dir", dir,
		"date", snap.Date.Format("2006-01-02"),
		"stations", len(snap.Stations),
		"prices", len(snap.Prices),
		"combined", len(snap.Combined),
	)
	return nil
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(ref *refresher.Refresher, store *snapshot.Store, arch *archive.Archiver) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string                 `json:"status"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]interface{}),
		}

		stats := ref.Stats()
		health.Components["refresher"] = map[string]interface{}{
			"cycles":   stats.Cycles,
			"errors":   stats.Errors,
			"last_run": stats.LastRun,
			"last_err": stats.LastErr,
		}
		if stats.Cycles > 0 && stats.LastErr != "" {
			health.Status = "degraded"
		}

		if dir, err := store.LatestDir(); err != nil {
			health.Status = "degraded"
			health.Components["snapshots"] = map[string]string{
				"status": "none",
				"error":  err.Error(),
			}
		} else {
			health.Components["snapshots"] = map[string]string{
				"latest": dir,
			}
		}

		if arch != nil {
			if err := arch.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["archive"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["archive"] = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/debug/snapshot", func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.LoadLatest()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"dir":      snap.DirName(),
			"date":     snap.Date.Format("2006-01-02"),
			"stations": len(snap.Stations),
			"prices":   len(snap.Prices),
			"combined": len(snap.Combined),
		})
	})

	return mux
}
