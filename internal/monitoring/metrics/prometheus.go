package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Registry to Prometheus. It reads the live values on
// every scrape, so no background copying is needed.
type Collector struct {
	registry *Registry

	messagesProcessed     *prometheus.Desc
	opportunitiesDetected *prometheus.Desc
	tradesExecuted        *prometheus.Desc
	averageLatency        *prometheus.Desc
	maxLatency            *prometheus.Desc
	memoryUsage           *prometheus.Desc
	cpuUsage              *prometheus.Desc
}

// NewCollector wraps the given registry for Prometheus scraping.
func NewCollector(registry *Registry) *Collector {
	return &Collector{
		registry: registry,
		messagesProcessed: prometheus.NewDesc(
			"arb_engine_messages_processed_total",
			"Total number of market data messages processed",
			nil, nil,
		),
		opportunitiesDetected: prometheus.NewDesc(
			"arb_engine_opportunities_detected_total",
			"Total number of arbitrage opportunities detected",
			nil, nil,
		),
		tradesExecuted: prometheus.NewDesc(
			"arb_engine_trades_executed_total",
			"Total number of trades executed",
			nil, nil,
		),
		averageLatency: prometheus.NewDesc(
			"arb_engine_latency_avg_ms",
			"Running average processing latency in milliseconds",
			nil, nil,
		),
		maxLatency: prometheus.NewDesc(
			"arb_engine_latency_max_ms",
			"Maximum processing latency observed in milliseconds",
			nil, nil,
		),
		memoryUsage: prometheus.NewDesc(
			"arb_engine_memory_usage_mb",
			"Resident set size of the engine process in megabytes",
			nil, nil,
		),
		cpuUsage: prometheus.NewDesc(
			"arb_engine_cpu_usage_pct",
			"CPU utilization percentage of the engine host",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.messagesProcessed
	ch <- c.opportunitiesDetected
	ch <- c.tradesExecuted
	ch <- c.averageLatency
	ch <- c.maxLatency
	ch <- c.memoryUsage
	ch <- c.cpuUsage
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.registry.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.messagesProcessed, prometheus.CounterValue, float64(snapshot.MessagesProcessed))
	ch <- prometheus.MustNewConstMetric(c.opportunitiesDetected, prometheus.CounterValue, float64(snapshot.OpportunitiesDetected))
	ch <- prometheus.MustNewConstMetric(c.tradesExecuted, prometheus.CounterValue, float64(snapshot.TradesExecuted))
	ch <- prometheus.MustNewConstMetric(c.averageLatency, prometheus.GaugeValue, snapshot.AverageLatencyMs)
	ch <- prometheus.MustNewConstMetric(c.maxLatency, prometheus.GaugeValue, snapshot.MaxLatencyMs)
	ch <- prometheus.MustNewConstMetric(c.memoryUsage, prometheus.GaugeValue, snapshot.MemoryUsageMB)
	ch <- prometheus.MustNewConstMetric(c.cpuUsage, prometheus.GaugeValue, snapshot.CPUUsagePct)
}

var _ prometheus.Collector = (*Collector)(nil)
