package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Maddesumit/synthetic-arb-engine/internal/api"
	"github.com/Maddesumit/synthetic-arb-engine/internal/api/handlers"
	"github.com/Maddesumit/synthetic-arb-engine/internal/config"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/health"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/metrics"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/sysprobe"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// Engine wires the performance monitoring core together: config, registry,
// sampler, alerts, health checks and the monitoring HTTP surface. Market
// data, pricing and detection stages hang off the same lifecycle once they
// exist.
type Engine struct {
	cfg     *config.Config
	monitor *monitoring.Monitor
	checker *health.Checker
	server  *api.Server
	sim     *simulator
}

// New builds the engine from a validated config.
func New(cfg *config.Config) (*Engine, error) {
	log := logger.WithComponent("engine")

	probe, err := sysprobe.NewProbe()
	if err != nil {
		return nil, fmt.Errorf("failed to create system probe: %w", err)
	}

	registry := metrics.NewRegistry()

	monitor, err := monitoring.New(cfg.Monitoring.Interval, registry, probe)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize performance monitor: %w", err)
	}

	// Alert callbacks surface breaches as warning lines, the way the
	// monitoring log sink expects them: tag first, then the message.
	logAlert := func(tag, message string) {
		log.Warn().Str("tag", tag).Msg(message)
	}
	if cfg.Monitoring.LatencyThresholdMs > 0 {
		monitor.SetLatencyAlert(logAlert, cfg.Monitoring.LatencyThresholdMs)
	}
	if cfg.Monitoring.MemoryThresholdMB > 0 {
		monitor.SetMemoryAlert(logAlert, cfg.Monitoring.MemoryThresholdMB)
	}
	if cfg.Monitoring.CPUThresholdPct > 0 {
		monitor.SetCPUAlert(logAlert, cfg.Monitoring.CPUThresholdPct)
	}

	checker := health.NewChecker(cfg.Monitoring.Interval*5, monitor, probe)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(metrics.NewCollector(registry))

	metricsHandler := handlers.NewMetricsHandler(monitor, checker)
	router := api.NewRouter(metricsHandler, promRegistry, cfg.Server.Endpoint)
	server := api.NewServer(cfg.Server, router)

	eng := &Engine{
		cfg:     cfg,
		monitor: monitor,
		checker: checker,
		server:  server,
	}

	if cfg.System.SimulateActivity {
		eng.sim = newSimulator(registry)
	}

	log.Info().Msg("Engine initialization completed successfully")
	return eng, nil
}

// Monitor exposes the performance monitor to the caller.
func (e *Engine) Monitor() *monitoring.Monitor {
	return e.monitor
}

// Run starts all components and blocks until the context is canceled, then
// shuts everything down in reverse order and dumps the final statistics.
func (e *Engine) Run(ctx context.Context) error {
	log := logger.WithComponent("engine")
	log.Info().Msg("Starting Synthetic Arbitrage Detection Engine...")

	e.printSystemInfo()
	e.printConfiguration()

	if e.cfg.System.PerformanceMonitoring {
		e.monitor.Start()
	} else {
		log.Warn().Msg("Performance monitoring disabled in config")
	}
	e.checker.Start()
	e.server.Start()

	if e.sim != nil {
		e.sim.start()
	}

	log.Info().Msg("Engine is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	e.shutdown()
	return nil
}

func (e *Engine) shutdown() {
	log := logger.WithComponent("engine")
	log.Info().Msg("Shutting down Synthetic Arbitrage Detection Engine...")

	if e.sim != nil {
		e.sim.stop()
	}

	e.monitor.Stop()
	e.checker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	final := e.monitor.Snapshot()
	log.Info().Msg("Final Statistics:")
	log.Info().Uint64("messages_processed", final.MessagesProcessed).Msg("  Messages Processed")
	log.Info().Uint64("opportunities_detected", final.OpportunitiesDetected).Msg("  Opportunities Detected")
	log.Info().Uint64("trades_executed", final.TradesExecuted).Msg("  Trades Executed")
	log.Info().Float64("avg_latency_ms", final.AverageLatencyMs).Msg("  Average Latency")
	log.Info().Float64("max_latency_ms", final.MaxLatencyMs).Msg("  Max Latency")
	log.Info().Float64("memory_mb", final.MemoryUsageMB).Msg("  Memory Usage")
	log.Info().Float64("cpu_pct", final.CPUUsagePct).Msg("  CPU Usage")

	log.Info().Msg("Engine shutdown completed")
}

func (e *Engine) printSystemInfo() {
	log := logger.WithComponent("engine")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}

	log.Info().
		Int("cpu_cores", runtime.NumCPU()).
		Int("pid", os.Getpid()).
		Str("working_directory", cwd).
		Msg("System information")
}

func (e *Engine) printConfiguration() {
	log := logger.WithComponent("engine")

	log.Info().
		Str("log_level", e.cfg.System.LogLevel).
		Bool("performance_monitoring", e.cfg.System.PerformanceMonitoring).
		Dur("monitoring_interval", e.cfg.Monitoring.Interval).
		Float64("latency_threshold_ms", e.cfg.Monitoring.LatencyThresholdMs).
		Float64("memory_threshold_mb", e.cfg.Monitoring.MemoryThresholdMB).
		Float64("cpu_threshold_pct", e.cfg.Monitoring.CPUThresholdPct).
		Msg("Configuration")

	for _, name := range e.cfg.EnabledExchanges() {
		ex := e.cfg.Exchanges[name]
		log.Info().
			Str("exchange", name).
			Str("websocket_url", ex.WebsocketURL).
			Str("rest_url", ex.RestURL).
			Msg("Enabled exchange")
	}

	log.Info().
		Float64("min_profit_threshold", e.cfg.Arbitrage.MinProfitThreshold).
		Int("max_latency_ms", e.cfg.Arbitrage.MaxLatencyMs).
		Float64("max_position_size", e.cfg.Arbitrage.MaxPositionSize).
		Msg("Arbitrage configuration")
}
