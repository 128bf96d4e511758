package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")

type PerfStats struct {
	// CPUPercent is the cpu usage of the process over its lifetime.
	CPUPercent         float64
	RSSMegabytes       int64
	AllocatedMegabytes int64
}

// SamplePerfStats reads the resource usage of the current process and records
// it as gauges. Fields that cannot be read are left zero.
func SamplePerfStats(ctx context.Context, api API) PerfStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := PerfStats{
		AllocatedMegabytes: int64(memStats.Alloc / 1_000_000),
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		api.ReportWarning("perf-stats.process", err)
		return stats
	}
	cpuUsage, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPUPercent = cpuUsage
	} else {
		api.ReportWarning("perf-stats.cpu", err)
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.RSSMegabytes = int64(mem.RSS / 1_000_000)
	} else {
		api.ReportWarning("perf-stats.memory", err)
	}

	cpuGauge.Record(ctx, stats.CPUPercent)
	rssGauge.Record(ctx, stats.RSSMegabytes)
	memoryGauge.Record(ctx, stats.AllocatedMegabytes)

	return stats
}
