package health

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitor struct {
	running bool
	uptime  time.Duration
}

func (f *fakeMonitor) Running() bool         { return f.running }
func (f *fakeMonitor) Uptime() time.Duration { return f.uptime }

type fakeProbe struct {
	memoryMB float64
	err      error
}

func (f *fakeProbe) MemoryUsageMB() (float64, error) { return f.memoryMB, f.err }
func (f *fakeProbe) CPUUsagePct() (float64, error)   { return 0, nil }

func TestCheckSamplerRunning(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{running: true, uptime: 5 * time.Second}, &fakeProbe{})
	checker.CheckSampler()

	h := checker.GetComponentHealth("sampler")
	require.NotNil(t, h)
	assert.Equal(t, StatusOK, h.Status)
	assert.Contains(t, h.Message, "uptime")
}

func TestCheckSamplerNotRunning(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{running: false}, &fakeProbe{})
	checker.CheckSampler()

	h := checker.GetComponentHealth("sampler")
	require.NotNil(t, h)
	assert.Equal(t, StatusWarning, h.Status)
}

func TestCheckSamplerNilMonitor(t *testing.T) {
	checker := NewChecker(time.Minute, nil, &fakeProbe{})
	checker.CheckSampler()

	h := checker.GetComponentHealth("sampler")
	require.NotNil(t, h)
	assert.Equal(t, StatusError, h.Status)
}

func TestCheckProbe(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{running: true}, &fakeProbe{memoryMB: 42.0})
	checker.CheckProbe()

	h := checker.GetComponentHealth("probe")
	require.NotNil(t, h)
	assert.Equal(t, StatusOK, h.Status)
}

func TestCheckProbeUnavailable(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{running: true}, &fakeProbe{err: fmt.Errorf("proc gone")})
	checker.CheckProbe()

	h := checker.GetComponentHealth("probe")
	require.NotNil(t, h)
	assert.Equal(t, StatusError, h.Status)
	assert.Contains(t, h.Message, "proc gone")
}

func TestGetAllHealthReturnsCopies(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{running: true}, &fakeProbe{})
	checker.CheckAll()

	all := checker.GetAllHealth()
	require.Len(t, all, 2)

	all["sampler"].Status = StatusError
	assert.Equal(t, StatusOK, checker.GetComponentHealth("sampler").Status)
}

func TestGetComponentHealthUnknown(t *testing.T) {
	checker := NewChecker(time.Minute, &fakeMonitor{}, &fakeProbe{})
	assert.Nil(t, checker.GetComponentHealth("database"))
}
