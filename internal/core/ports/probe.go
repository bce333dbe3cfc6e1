package ports

// SystemProbe defines the interface for sampling process resource usage.
// MemoryUsageMB returns the resident set size in megabytes. CPUUsagePct
// returns the CPU utilization percentage over the window since the previous
// call; the first call has no baseline and reports 0.
type SystemProbe interface {
	MemoryUsageMB() (float64, error)
	CPUUsagePct() (float64, error)
}
