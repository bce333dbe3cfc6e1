package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maddesumit/synthetic-arb-engine/internal/api/handlers"
	"github.com/Maddesumit/synthetic-arb-engine/internal/core/models"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/health"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/metrics"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithMode(logger.LogModeTest)
	os.Exit(m.Run())
}

type stubProbe struct {
	memoryMB float64
	cpuPct   float64
}

func (s *stubProbe) MemoryUsageMB() (float64, error) { return s.memoryMB, nil }
func (s *stubProbe) CPUUsagePct() (float64, error)   { return s.cpuPct, nil }

func newTestRouter(t *testing.T) (*Router, *monitoring.Monitor) {
	t.Helper()

	probe := &stubProbe{memoryMB: 128.0, cpuPct: 12.0}
	registry := metrics.NewRegistry()
	monitor, err := monitoring.New(20*time.Millisecond, registry, probe)
	require.NoError(t, err)

	checker := health.NewChecker(time.Minute, monitor, probe)
	checker.CheckAll()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(metrics.NewCollector(registry))

	handler := handlers.NewMetricsHandler(monitor, checker)
	return NewRouter(handler, promRegistry, "/api/v1"), monitor
}

func TestGetSnapshot(t *testing.T) {
	router, monitor := newTestRouter(t)

	monitor.Registry().RecordMessageProcessed()
	monitor.Registry().RecordLatency(12.5)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snapshot models.PerformanceMetrics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snapshot))
	assert.Equal(t, uint64(1), snapshot.MessagesProcessed)
	assert.Equal(t, 12.5, snapshot.AverageLatencyMs)
}

func TestGetAlertsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestResetMetrics(t *testing.T) {
	router, monitor := newTestRouter(t)

	monitor.Registry().RecordMessageProcessed()
	monitor.Registry().RecordLatency(5.0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/metrics/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	snapshot := monitor.Snapshot()
	assert.Zero(t, snapshot.MessagesProcessed)
	assert.Zero(t, snapshot.AverageLatencyMs)
}

func TestResetMetricsRequiresPost(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetHealthDegraded(t *testing.T) {
	router, _ := newTestRouter(t)

	// The monitor was never started, so the sampler check reports a warning.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status     string                             `json:"status"`
		Components map[string]*health.ComponentHealth `json:"components"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	require.Contains(t, body.Components, "sampler")
	assert.Equal(t, health.StatusWarning, body.Components["sampler"].Status)
	require.Contains(t, body.Components, "probe")
	assert.Equal(t, health.StatusOK, body.Components["probe"].Status)
}

func TestGetHealthHealthy(t *testing.T) {
	_, monitor := newTestRouter(t)

	monitor.Start()
	defer monitor.Stop()

	// Re-run the checks now that the sampler is up.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	checker := health.NewChecker(time.Minute, monitor, &stubProbe{memoryMB: 1})
	checker.CheckAll()
	handler := handlers.NewMetricsHandler(monitor, checker)
	promRegistry := prometheus.NewRegistry()
	NewRouter(handler, promRegistry, "/api/v1").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestPrometheusEndpoint(t *testing.T) {
	router, monitor := newTestRouter(t)

	monitor.Registry().RecordMessageProcessed()
	monitor.Registry().RecordLatency(7.0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "arb_engine_messages_processed_total 1")
	assert.Contains(t, string(body), "arb_engine_latency_avg_ms 7")
}

func TestStreamMetrics(t *testing.T) {
	router, monitor := newTestRouter(t)

	monitor.Registry().RecordMessageProcessed()

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/metrics"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg handlers.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "metrics_snapshot", msg.Type)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), payload["messages_processed"])
}
