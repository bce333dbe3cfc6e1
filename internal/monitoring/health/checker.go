package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Maddesumit/synthetic-arb-engine/internal/core/ports"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// Status represents the health status of a component
type Status string

const (
	// StatusOK indicates the component is healthy
	StatusOK Status = "OK"
	// StatusWarning indicates the component has issues but is still functional
	StatusWarning Status = "WARNING"
	// StatusError indicates the component is not functioning
	StatusError Status = "ERROR"
)

// ComponentHealth represents the health status of a system component
type ComponentHealth struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Message     string    `json:"message"`
	LastChecked time.Time `json:"last_checked"`
}

// MonitorStatus is the slice of the monitor the checker inspects.
type MonitorStatus interface {
	Running() bool
	Uptime() time.Duration
}

// Checker monitors the health of the engine's components: the sampler loop
// and the resource probe.
type Checker struct {
	components map[string]*ComponentHealth
	mu         sync.RWMutex
	checkFreq  time.Duration
	monitor    MonitorStatus
	probe      ports.SystemProbe
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewChecker creates a health checker for the given monitor and probe.
func NewChecker(checkFreq time.Duration, monitor MonitorStatus, probe ports.SystemProbe) *Checker {
	if checkFreq == 0 {
		checkFreq = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Checker{
		components: make(map[string]*ComponentHealth),
		checkFreq:  checkFreq,
		monitor:    monitor,
		probe:      probe,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins periodic health checks
func (hc *Checker) Start() {
	log := logger.WithComponent("health_checker")
	log.Info().Dur("frequency", hc.checkFreq).Msg("Starting health checker")

	ticker := time.NewTicker(hc.checkFreq)
	go func() {
		defer ticker.Stop()

		// Run initial health check
		hc.CheckAll()

		for {
			select {
			case <-ticker.C:
				hc.CheckAll()
			case <-hc.ctx.Done():
				log.Info().Msg("Health checker stopped")
				return
			}
		}
	}()
}

// Stop halts the health checker
func (hc *Checker) Stop() {
	if hc.cancel != nil {
		hc.cancel()
	}
}

// CheckAll runs all health checks
func (hc *Checker) CheckAll() {
	hc.CheckSampler()
	hc.CheckProbe()
}

// CheckSampler checks whether the monitor's sampler loop is running.
func (hc *Checker) CheckSampler() {
	log := logger.WithComponent("health_checker.sampler")

	health := &ComponentHealth{
		Name:        "sampler",
		LastChecked: time.Now(),
	}

	if hc.monitor == nil {
		health.Status = StatusError
		health.Message = "Monitor not initialized"
		log.Error().Msg(health.Message)
	} else if !hc.monitor.Running() {
		health.Status = StatusWarning
		health.Message = "Sampler loop not running"
		log.Warn().Msg(health.Message)
	} else {
		health.Status = StatusOK
		health.Message = fmt.Sprintf("Sampler running (uptime %s)", hc.monitor.Uptime().Round(time.Second))
		log.Debug().Dur("uptime", hc.monitor.Uptime()).Msg("Sampler healthy")
	}

	hc.mu.Lock()
	hc.components["sampler"] = health
	hc.mu.Unlock()
}

// CheckProbe checks whether the resource usage source is readable.
func (hc *Checker) CheckProbe() {
	log := logger.WithComponent("health_checker.probe")

	health := &ComponentHealth{
		Name:        "probe",
		LastChecked: time.Now(),
	}

	if hc.probe == nil {
		health.Status = StatusError
		health.Message = "System probe not initialized"
		log.Error().Msg(health.Message)
	} else if memoryMB, err := hc.probe.MemoryUsageMB(); err != nil {
		health.Status = StatusError
		health.Message = fmt.Sprintf("Resource usage source unavailable: %v", err)
		log.Error().Err(err).Msg("Resource usage source unavailable")
	} else {
		health.Status = StatusOK
		health.Message = fmt.Sprintf("Resource usage source readable (rss %.2fMB)", memoryMB)
		log.Debug().Float64("memory_mb", memoryMB).Msg("Probe healthy")
	}

	hc.mu.Lock()
	hc.components["probe"] = health
	hc.mu.Unlock()
}

// GetAllHealth returns the health status of all components
func (hc *Checker) GetAllHealth() map[string]*ComponentHealth {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	// Create a copy to avoid race conditions
	result := make(map[string]*ComponentHealth, len(hc.components))
	for k, v := range hc.components {
		componentCopy := *v
		result[k] = &componentCopy
	}

	return result
}

// GetComponentHealth returns the health status of a specific component
func (hc *Checker) GetComponentHealth(name string) *ComponentHealth {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	if component, exists := hc.components[name]; exists {
		componentCopy := *component
		return &componentCopy
	}

	return nil
}
