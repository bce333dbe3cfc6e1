package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Maddesumit/synthetic-arb-engine/internal/core/models"
	"github.com/Maddesumit/synthetic-arb-engine/internal/core/ports"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/metrics"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

const (
	// DefaultInterval is used when the caller does not configure one.
	DefaultInterval = time.Second

	// maxAlertHistory bounds the in-memory alert event buffer.
	maxAlertHistory = 128
)

type monitorState int

const (
	stateIdle monitorState = iota
	stateRunning
	stateStopped
)

// Monitor owns the metrics registry and runs the background sampler that
// pulls system resource usage into it, evaluates alert thresholds and emits
// one status line per cycle. Producers record into the registry from any
// goroutine; the sampler never blocks them.
//
// Lifecycle is Idle -> Running -> Stopped. Start transitions once; Stop
// signals the sampler and joins it, so no registry mutation from the sampler
// happens after Stop returns.
type Monitor struct {
	interval  time.Duration
	registry  *metrics.Registry
	probe     ports.SystemProbe
	startTime time.Time

	mu     sync.Mutex
	state  monitorState
	cancel context.CancelFunc
	wg     sync.WaitGroup

	alertsMu    sync.RWMutex
	latencyRule *alertRule
	memoryRule  *alertRule
	cpuRule     *alertRule
	history     []AlertEvent
}

// New builds a monitor around the given registry and probe. A zero interval
// falls back to DefaultInterval; a negative one is a configuration error the
// caller must not ignore.
func New(interval time.Duration, registry *metrics.Registry, probe ports.SystemProbe) (*Monitor, error) {
	if registry == nil {
		return nil, fmt.Errorf("monitor requires a registry")
	}
	if probe == nil {
		return nil, fmt.Errorf("monitor requires a system probe")
	}
	if interval < 0 {
		return nil, fmt.Errorf("monitoring interval must be positive, got %s", interval)
	}
	if interval == 0 {
		interval = DefaultInterval
	}

	log := logger.WithComponent("monitor")
	log.Info().Dur("interval", interval).Msg("Performance monitor initialized")

	return &Monitor{
		interval:  interval,
		registry:  registry,
		probe:     probe,
		startTime: time.Now(),
	}, nil
}

// Registry returns the registry producers record into.
func (m *Monitor) Registry() *metrics.Registry {
	return m.registry
}

// Interval returns the configured sampling interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Uptime returns the time elapsed since the monitor was constructed.
func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// Running reports whether the sampler loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateRunning
}

// SetLatencyAlert registers a callback fired when the average latency exceeds
// thresholdMs. A threshold <= 0 disables the alert.
func (m *Monitor) SetLatencyAlert(callback AlertCallback, thresholdMs float64) {
	m.alertsMu.Lock()
	defer m.alertsMu.Unlock()
	m.latencyRule = &alertRule{tag: AlertTagLatency, unit: "ms", threshold: thresholdMs, callback: callback}
}

// SetMemoryAlert registers a callback fired when memory usage exceeds
// thresholdMB. A threshold <= 0 disables the alert.
func (m *Monitor) SetMemoryAlert(callback AlertCallback, thresholdMB float64) {
	m.alertsMu.Lock()
	defer m.alertsMu.Unlock()
	m.memoryRule = &alertRule{tag: AlertTagMemory, unit: "MB", threshold: thresholdMB, callback: callback}
}

// SetCPUAlert registers a callback fired when CPU usage exceeds thresholdPct.
// A threshold <= 0 disables the alert.
func (m *Monitor) SetCPUAlert(callback AlertCallback, thresholdPct float64) {
	m.alertsMu.Lock()
	defer m.alertsMu.Unlock()
	m.cpuRule = &alertRule{tag: AlertTagCPU, unit: "%", threshold: thresholdPct, callback: callback}
}

// RecentAlerts returns a copy of the recorded alert events, newest last.
func (m *Monitor) RecentAlerts() []AlertEvent {
	m.alertsMu.RLock()
	defer m.alertsMu.RUnlock()
	out := make([]AlertEvent, len(m.history))
	copy(out, m.history)
	return out
}

// Start launches the background sampler. Calling it while running, or after
// Stop, is a warned no-op.
func (m *Monitor) Start() {
	log := logger.WithComponent("monitor")

	m.mu.Lock()
	switch m.state {
	case stateRunning:
		m.mu.Unlock()
		log.Warn().Msg("Performance monitor already running")
		return
	case stateStopped:
		m.mu.Unlock()
		log.Warn().Msg("Performance monitor already stopped, not restarting")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = stateRunning
	m.wg.Add(1)
	go m.loop(ctx)
	m.mu.Unlock()

	log.Info().Dur("interval", m.interval).Msg("Performance monitor started")
}

// Stop signals the sampler to exit and blocks until it has. Idempotent; a
// second call is a warned no-op. After Stop returns the sampler mutates
// nothing.
func (m *Monitor) Stop() {
	log := logger.WithComponent("monitor")

	m.mu.Lock()
	if m.state != stateRunning {
		m.mu.Unlock()
		log.Warn().Msg("Performance monitor not running")
		return
	}
	m.state = stateStopped
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()

	log.Info().Msg("Performance monitor stopped")
}

// Snapshot returns the current metrics snapshot.
func (m *Monitor) Snapshot() models.PerformanceMetrics {
	return m.registry.Snapshot()
}

// ResetMetrics zeroes all counters and gauges.
func (m *Monitor) ResetMetrics() {
	m.registry.Reset()
	log := logger.WithComponent("monitor")
	log.Info().Msg("Performance metrics reset")
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.runCycle()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runCycle executes one sampling cycle: probe system usage, update the
// gauges, evaluate alerts, emit the status line. Probe errors degrade to
// zero-valued samples; nothing raised here terminates the loop.
func (m *Monitor) runCycle() {
	log := logger.WithComponent("monitor")

	memoryMB, err := m.probe.MemoryUsageMB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to sample memory usage")
		memoryMB = 0
	}
	m.registry.RecordMemoryUsage(memoryMB)

	cpuPct, err := m.probe.CPUUsagePct()
	if err != nil {
		log.Error().Err(err).Msg("Failed to sample CPU usage")
		cpuPct = 0
	}
	m.registry.RecordCPUUsage(cpuPct)

	m.checkAlerts()

	snapshot := m.registry.Snapshot()
	log.Info().
		Uint64("messages", snapshot.MessagesProcessed).
		Uint64("opportunities", snapshot.OpportunitiesDetected).
		Uint64("trades", snapshot.TradesExecuted).
		Float64("avg_latency_ms", snapshot.AverageLatencyMs).
		Float64("max_latency_ms", snapshot.MaxLatencyMs).
		Float64("memory_mb", snapshot.MemoryUsageMB).
		Float64("cpu_pct", snapshot.CPUUsagePct).
		Msg("Performance metrics")
}

func (m *Monitor) checkAlerts() {
	m.alertsMu.RLock()
	latencyRule := m.latencyRule
	memoryRule := m.memoryRule
	cpuRule := m.cpuRule
	m.alertsMu.RUnlock()

	m.evaluateRule(latencyRule, m.registry.AverageLatency())
	m.evaluateRule(memoryRule, m.registry.MemoryUsage())
	m.evaluateRule(cpuRule, m.registry.CPUUsage())
}

func (m *Monitor) evaluateRule(rule *alertRule, value float64) {
	if !rule.enabled() || value <= rule.threshold {
		return
	}

	event := newAlertEvent(rule, value)

	log := logger.WithComponent("monitor")
	log.Debug().
		Str("alert_id", event.ID).
		Str("tag", event.Tag).
		Float64("value", event.Value).
		Float64("threshold", event.Threshold).
		Msg("Alert threshold breached")

	rule.callback(event.Tag, event.Message)

	m.alertsMu.Lock()
	m.history = append(m.history, event)
	if len(m.history) > maxAlertHistory {
		m.history = m.history[len(m.history)-maxAlertHistory:]
	}
	m.alertsMu.Unlock()
}
