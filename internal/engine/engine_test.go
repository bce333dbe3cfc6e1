package engine

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maddesumit/synthetic-arb-engine/internal/config"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/metrics"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithMode(logger.LogModeTest)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		System: config.SystemConfig{
			LogLevel:              "info",
			PerformanceMonitoring: true,
		},
		Monitoring: config.MonitoringConfig{
			Interval:           time.Second,
			LatencyThresholdMs: 50.0,
			MemoryThresholdMB:  2048.0,
			CPUThresholdPct:    80.0,
		},
		Server: config.ServerConfig{
			Host:     "localhost",
			Port:     0,
			Endpoint: "/api/v1",
		},
	}
}

func TestNewEngine(t *testing.T) {
	eng, err := New(testConfig())
	require.NoError(t, err)

	require.NotNil(t, eng.Monitor())
	assert.Equal(t, time.Second, eng.Monitor().Interval())
	assert.False(t, eng.Monitor().Running())
	assert.Nil(t, eng.sim)
}

func TestNewEngineWithSimulator(t *testing.T) {
	cfg := testConfig()
	cfg.System.SimulateActivity = true

	eng, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, eng.sim)
}

func TestSimulatorRecordsActivity(t *testing.T) {
	registry := metrics.NewRegistry()
	sim := newSimulator(registry)

	sim.start()
	assert.Eventually(t, func() bool {
		return registry.MessagesProcessed() >= 1
	}, 5*time.Second, 50*time.Millisecond)
	sim.stop()

	assert.Greater(t, registry.AverageLatency(), 0.0)

	// Joined on stop; counters stay put afterwards.
	messages := registry.MessagesProcessed()
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, messages, registry.MessagesProcessed())
}

func TestSimulatorStopWithoutStart(t *testing.T) {
	sim := newSimulator(metrics.NewRegistry())
	sim.stop()
}
