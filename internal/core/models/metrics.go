package models

import "time"

// PerformanceMetrics is an immutable snapshot of the engine's performance
// counters and gauges at a single point in time.
type PerformanceMetrics struct {
	MessagesProcessed     uint64    `json:"messages_processed"`
	OpportunitiesDetected uint64    `json:"opportunities_detected"`
	TradesExecuted        uint64    `json:"trades_executed"`
	AverageLatencyMs      float64   `json:"average_latency_ms"`
	MaxLatencyMs          float64   `json:"max_latency_ms"`
	MemoryUsageMB         float64   `json:"memory_usage_mb"`
	CPUUsagePct           float64   `json:"cpu_usage_pct"`
	LastUpdate            time.Time `json:"last_update"`
}
