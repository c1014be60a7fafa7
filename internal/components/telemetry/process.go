package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

const report_process_stats = "process.stats"

// RecordProcessStats takes a single sample of the resource usage of the
// current process and records it to otel gauges. The gauges go nowhere
// unless SetupOtel installed a meter provider.
func RecordProcessStats(ctx context.Context, tel API) {
	meter := otel.Meter("coursegraph/process")
	cpuGauge, err := meter.Float64Gauge("process.cpu_seconds")
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	rssGauge, err := meter.Int64Gauge("process.rss_bytes")
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	heapGauge, err := meter.Int64Gauge("process.heap_bytes")
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	times, err := proc.TimesWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	cpuSeconds := times.User + times.System
	cpuGauge.Record(ctx, cpuSeconds)
	rssGauge.Record(ctx, int64(mem.RSS))
	heapGauge.Record(ctx, int64(memStats.HeapAlloc))

	tel.ReportDebug(
		"process stats",
		cpuSeconds,
		humanize.Bytes(mem.RSS),
		humanize.Bytes(memStats.HeapAlloc),
	)
}
