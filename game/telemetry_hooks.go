package game

import (
	"log/slog"

	"github.com/pthm-cable/traffic/telemetry"
)

// flushTelemetry closes the stats window once it has run its length.
// Cars are sampled at the moment the window closes.
func (g *Game) flushTelemetry() {
	tick := g.scn.Ticks()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	g.scn.Sample(g.collector.Sample)
	stats := g.collector.Flush(tick, g.scn.Arrivals())
	perfStats := g.perfCollector.Stats()
	g.lastStats = &stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// LastStats returns the most recent stats window, or nil before the first.
func (g *Game) LastStats() *telemetry.WindowStats {
	return g.lastStats
}
