package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Maddesumit/synthetic-arb-engine/internal/core/models"
)

// Registry is the process-wide store for the engine's performance counters
// and gauges. Every mutation is safe under unbounded concurrent callers.
//
// Independent fields use lock-free atomics. The latency sum/count/average
// triple has a cross-field consistency requirement, so it is guarded by a
// dedicated mutex; the monotonic max latency deliberately stays outside that
// lock since it has no such requirement.
type Registry struct {
	messagesProcessed     atomic.Uint64
	opportunitiesDetected atomic.Uint64
	tradesExecuted        atomic.Uint64

	// float64 gauges stored as math.Float64bits
	maxLatencyBits atomic.Uint64
	avgLatencyBits atomic.Uint64
	memoryMBBits   atomic.Uint64
	cpuPctBits     atomic.Uint64

	mu           sync.Mutex // guards latencySum, latencyCount and avgLatencyBits writes
	latencySum   float64
	latencyCount uint64
}

// NewRegistry returns a zeroed registry ready for concurrent use.
func NewRegistry() *Registry {
	return &Registry{}
}

// RecordMessageProcessed increments the processed-message counter.
func (r *Registry) RecordMessageProcessed() {
	r.messagesProcessed.Add(1)
}

// RecordOpportunityDetected increments the detected-opportunity counter.
func (r *Registry) RecordOpportunityDetected() {
	r.opportunitiesDetected.Add(1)
}

// RecordTradeExecuted increments the executed-trade counter.
func (r *Registry) RecordTradeExecuted() {
	r.tradesExecuted.Add(1)
}

// RecordLatency folds one latency sample (milliseconds) into the max and the
// running average. Negative inputs are not validated and will corrupt the
// running average; callers own that boundary.
func (r *Registry) RecordLatency(latencyMs float64) {
	// Monotonic max: read, compare, CAS, retry. Converges because the max
	// only ever grows and every failed swap observes a value at least as
	// large as the one it lost to.
	for {
		cur := r.maxLatencyBits.Load()
		if latencyMs <= math.Float64frombits(cur) {
			break
		}
		if r.maxLatencyBits.CompareAndSwap(cur, math.Float64bits(latencyMs)) {
			break
		}
	}

	r.mu.Lock()
	r.latencyCount++
	r.latencySum += latencyMs
	r.avgLatencyBits.Store(math.Float64bits(r.latencySum / float64(r.latencyCount)))
	r.mu.Unlock()
}

// RecordMemoryUsage replaces the memory gauge (megabytes), last writer wins.
func (r *Registry) RecordMemoryUsage(memoryMB float64) {
	r.memoryMBBits.Store(math.Float64bits(memoryMB))
}

// RecordCPUUsage replaces the CPU gauge (percentage), last writer wins.
func (r *Registry) RecordCPUUsage(cpuPct float64) {
	r.cpuPctBits.Store(math.Float64bits(cpuPct))
}

// Snapshot copies all fields into an immutable PerformanceMetrics value with
// the current timestamp. The latency average is read under the same lock that
// maintains it, so the reported average is never a torn sum/count pair.
// Counters and gauges updated outside that lock may reflect slightly
// different instants relative to each other.
func (r *Registry) Snapshot() models.PerformanceMetrics {
	r.mu.Lock()
	avg := math.Float64frombits(r.avgLatencyBits.Load())
	r.mu.Unlock()

	return models.PerformanceMetrics{
		MessagesProcessed:     r.messagesProcessed.Load(),
		OpportunitiesDetected: r.opportunitiesDetected.Load(),
		TradesExecuted:        r.tradesExecuted.Load(),
		AverageLatencyMs:      avg,
		MaxLatencyMs:          math.Float64frombits(r.maxLatencyBits.Load()),
		MemoryUsageMB:         math.Float64frombits(r.memoryMBBits.Load()),
		CPUUsagePct:           math.Float64frombits(r.cpuPctBits.Load()),
		LastUpdate:            time.Now(),
	}
}

// Reset zeroes every counter, gauge and the internal latency bookkeeping.
// It takes the latency lock so it cannot race an in-flight average update.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messagesProcessed.Store(0)
	r.opportunitiesDetected.Store(0)
	r.tradesExecuted.Store(0)
	r.maxLatencyBits.Store(0)
	r.avgLatencyBits.Store(0)
	r.memoryMBBits.Store(0)
	r.cpuPctBits.Store(0)
	r.latencySum = 0
	r.latencyCount = 0
}

func (r *Registry) MessagesProcessed() uint64 {
	return r.messagesProcessed.Load()
}

func (r *Registry) OpportunitiesDetected() uint64 {
	return r.opportunitiesDetected.Load()
}

func (r *Registry) TradesExecuted() uint64 {
	return r.tradesExecuted.Load()
}

func (r *Registry) AverageLatency() float64 {
	return math.Float64frombits(r.avgLatencyBits.Load())
}

func (r *Registry) MaxLatency() float64 {
	return math.Float64frombits(r.maxLatencyBits.Load())
}

func (r *Registry) MemoryUsage() float64 {
	return math.Float64frombits(r.memoryMBBits.Load())
}

func (r *Registry) CPUUsage() float64 {
	return math.Float64frombits(r.cpuPctBits.Load())
}

// IsLatencyWithinThreshold reports whether the average latency is at or below
// the given threshold in milliseconds.
func (r *Registry) IsLatencyWithinThreshold(thresholdMs float64) bool {
	return r.AverageLatency() <= thresholdMs
}

// IsMemoryWithinThreshold reports whether the memory gauge is at or below the
// given threshold in megabytes.
func (r *Registry) IsMemoryWithinThreshold(thresholdMB float64) bool {
	return r.MemoryUsage() <= thresholdMB
}

// IsCPUWithinThreshold reports whether the CPU gauge is at or below the given
// threshold percentage.
func (r *Registry) IsCPUWithinThreshold(thresholdPct float64) bool {
	return r.CPUUsage() <= thresholdPct
}
