package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Cars     int
	Tick     int
	Arrivals int
	Speed    int
	FPS      int32
	Zoom     float32
	Paused   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD along the top of the screen.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	info := fmt.Sprintf("Cars: %d | Tick: %d | Arrivals: %d | Speed: %dx | Zoom: %.2f | FPS: %d",
		data.Cars, data.Tick, data.Arrivals, data.Speed, data.Zoom, data.FPS)
	rl.DrawText(info, 10, 35, 16, rl.LightGray)

	if data.Paused {
		text := "PAUSED"
		w := rl.MeasureText(text, 20)
		rl.DrawText(text, screenWidth-w-10, 10, 20, h.renderer.Theme.Highlight)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel. Nothing is drawn before the first window closes.
func (p *StatsPanel) Draw(stats *telemetry.WindowStats, maxSpeed float32) {
	if stats == nil {
		return
	}

	r := p.renderer
	padding := r.Theme.Padding
	inner := p.width - padding*2

	r.DrawPanel(p.x, p.y, p.width, r.Theme.LineHeight*9+padding*2)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, fmt.Sprintf("Window %d-%d", stats.WindowStartTick, stats.WindowEndTick))
	y = r.DrawLabelValue(x, y, "Arrivals", fmt.Sprintf("%d (%.2f/tick)", stats.Arrivals, stats.ArrivalsPerTick))
	y = r.DrawLabelValue(x, y, "Stopped", fmt.Sprintf("%d of %d", stats.Stopped, stats.Cars))
	y = r.DrawBar(x, y, "Speed mean", float32(stats.SpeedMean), 0, maxSpeed, inner)
	y = r.DrawLabelValue(x, y, "Speed p10-90", fmt.Sprintf("%.0f / %.0f / %.0f", stats.SpeedP10, stats.SpeedP50, stats.SpeedP90))
	y = r.DrawLabelValue(x, y, "|Wheel|", fmt.Sprintf("%.1f deg", stats.WheelAbsMean))
	r.DrawLabelValue(x, y, "Dest dist", fmt.Sprintf("%.0f (p90 %.0f)", stats.DestDistMean, stats.DestDistP90))
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range []string{telemetry.PhaseSnapshot, telemetry.PhaseDrive, telemetry.PhaseTelemetry} {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
