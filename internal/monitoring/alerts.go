package monitoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Alert classification tags passed to callbacks and written to the log.
const (
	AlertTagLatency = "LATENCY_ALERT"
	AlertTagMemory  = "MEMORY_ALERT"
	AlertTagCPU     = "CPU_ALERT"
)

// AlertCallback receives a classification tag and a human-readable message.
// It is invoked synchronously from the sampler on every cycle the breach
// persists; there is no debounce.
type AlertCallback func(tag string, message string)

// AlertEvent is one recorded threshold breach.
type AlertEvent struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// alertRule pairs a threshold with its callback. A threshold <= 0 disables
// the rule.
type alertRule struct {
	tag       string
	unit      string
	threshold float64
	callback  AlertCallback
}

func (a *alertRule) enabled() bool {
	return a != nil && a.callback != nil && a.threshold > 0
}

func (a *alertRule) message(value float64) string {
	switch a.tag {
	case AlertTagLatency:
		return fmt.Sprintf("Average latency %.2f%s exceeds threshold %.2f%s", value, a.unit, a.threshold, a.unit)
	case AlertTagMemory:
		return fmt.Sprintf("Memory usage %.2f%s exceeds threshold %.2f%s", value, a.unit, a.threshold, a.unit)
	default:
		return fmt.Sprintf("CPU usage %.2f%s exceeds threshold %.2f%s", value, a.unit, a.threshold, a.unit)
	}
}

func newAlertEvent(rule *alertRule, value float64) AlertEvent {
	return AlertEvent{
		ID:        uuid.New().String(),
		Tag:       rule.tag,
		Message:   rule.message(value),
		Value:     value,
		Threshold: rule.threshold,
		Timestamp: time.Now(),
	}
}
