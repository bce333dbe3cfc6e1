package sysprobe

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/process"

	"github.com/Maddesumit/synthetic-arb-engine/internal/core/ports"
)

// Probe samples process resource usage through gopsutil. It keeps the
// previous CPU accounting counters so utilization can be computed as a delta
// between consecutive samples. It is not safe for concurrent use; the
// sampler loop is its only caller.
type Probe struct {
	proc        *process.Process
	hasBaseline bool
	prev        cpuCounters
}

type cpuCounters struct {
	total float64
	idle  float64
}

// NewProbe builds a probe bound to the current process.
func NewProbe() (*Probe, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open process handle: %w", err)
	}
	return &Probe{proc: proc}, nil
}

// MemoryUsageMB returns the resident set size in megabytes.
func (p *Probe) MemoryUsageMB() (float64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("failed to read memory info: %w", err)
	}
	return float64(info.RSS) / (1024 * 1024), nil
}

// CPUUsagePct returns the CPU utilization percentage over the accounting
// window since the previous call. The first call establishes the baseline and
// reports 0.
func (p *Probe) CPUUsagePct() (float64, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return 0, fmt.Errorf("failed to read cpu times: %w", err)
	}
	if len(times) == 0 {
		return 0, fmt.Errorf("cpu times returned no entries")
	}

	cur := countersFromTimes(times[0])
	if !p.hasBaseline {
		p.prev = cur
		p.hasBaseline = true
		return 0, nil
	}

	usage := usageFromDeltas(p.prev, cur)
	p.prev = cur
	return usage, nil
}

func countersFromTimes(t cpu.TimesStat) cpuCounters {
	total := t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
	return cpuCounters{
		total: total,
		idle:  t.Idle + t.Iowait,
	}
}

// usageFromDeltas scales the busy share of the accounting window to a
// percentage. A window where the counters did not advance reports 0 rather
// than dividing by zero.
func usageFromDeltas(prev, cur cpuCounters) float64 {
	totalDelta := cur.total - prev.total
	if totalDelta <= 0 {
		return 0
	}
	idleDelta := cur.idle - prev.idle
	return 100 * (1 - idleDelta/totalDelta)
}

var _ ports.SystemProbe = (*Probe)(nil)
