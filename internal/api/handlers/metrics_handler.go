package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring"
	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/health"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// MetricsHandler serves the monitoring surface: snapshots, alert history,
// reset, health and the live websocket stream.
type MetricsHandler struct {
	monitor *monitoring.Monitor
	checker *health.Checker

	upgrader websocket.Upgrader
}

func NewMetricsHandler(monitor *monitoring.Monitor, checker *health.Checker) *MetricsHandler {
	return &MetricsHandler{
		monitor: monitor,
		checker: checker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// GetSnapshot returns the current metrics snapshot as JSON.
func (h *MetricsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitor.Snapshot())
}

// GetAlerts returns the recorded alert events, newest last.
func (h *MetricsHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.monitor.RecentAlerts()
	if alerts == nil {
		alerts = []monitoring.AlertEvent{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// ResetMetrics zeroes all counters and gauges.
func (h *MetricsHandler) ResetMetrics(w http.ResponseWriter, r *http.Request) {
	h.monitor.ResetMetrics()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// GetHealth reports component health; any component in error yields 503.
func (h *MetricsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	components := h.checker.GetAllHealth()

	status := http.StatusOK
	overall := "healthy"
	for _, c := range components {
		if c.Status == health.StatusError {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
			break
		}
		if c.Status == health.StatusWarning {
			overall = "degraded"
		}
	}

	writeJSON(w, status, map[string]interface{}{
		"status":     overall,
		"components": components,
		"timestamp":  time.Now().Unix(),
	})
}

// WSMessage wraps every frame sent on the metrics stream.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StreamMetrics upgrades the connection and pushes one snapshot per sampling
// interval until the client goes away.
func (h *MetricsHandler) StreamMetrics(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("websocket")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(h.monitor.Interval())
	defer ticker.Stop()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("Connection closed")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(WSMessage{
				Type:    "metrics_snapshot",
				Payload: h.monitor.Snapshot(),
			}); err != nil {
				log.Debug().Err(err).Msg("Snapshot send failed")
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logger.WithComponent("api")
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
