package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/renderer"
	"github.com/pthm-cable/traffic/systems"
	"github.com/pthm-cable/traffic/ui"
)

// Title shown in the HUD.
const Title = "Traffic"

const controlsLegend = "Space pause | ,/. speed | S shuffle | N step | Tab controls | P perf | Home reset | drag pan | wheel zoom"

// Draw renders the world and the UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	selected, hasSelected := g.inspector.Find(g.frame)
	var leader *systems.AgentSnapshot
	if hasSelected {
		leader = g.leaderOf(selected)
	}

	rl.BeginMode2D(renderer.Camera2D(g.camera))
	g.drawWorld()
	if hasSelected {
		shown := leader
		if !g.overlays.IsEnabled(ui.OverlayLeaderLink) {
			shown = nil
		}
		g.inspector.DrawSelectionHighlight(selected, shown, g.camera.Zoom)
	}
	rl.EndMode2D()

	g.drawUI(selected, hasSelected, leader)

	rl.EndDrawing()
}

// drawWorld draws the background grid and every car in world space.
func (g *Game) drawWorld() {
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		minX, minY, maxX, maxY := g.camera.VisibleWorldBounds()
		renderer.DrawGrid(minX, minY, maxX, maxY, renderer.GridSpacing(g.camera.Zoom, 40), g.camera.Zoom)
		renderer.DrawSpawnSquare(g.cfg.Derived.SpawnExtent, g.camera.Zoom)
	}

	renderer.DrawCars(g.frame, renderer.StyleFromOverlays(g.overlays), g.camera)
}

// drawUI draws the screen-space panels.
func (g *Game) drawUI(selected systems.AgentSnapshot, hasSelected bool, leader *systems.AgentSnapshot) {
	g.hud.Draw(ui.HUDData{
		Title:    Title,
		Cars:     g.scn.Len(),
		Tick:     g.scn.Ticks(),
		Arrivals: g.scn.Arrivals(),
		Speed:    g.state.Speed,
		FPS:      rl.GetFPS(),
		Zoom:     g.camera.Zoom,
		Paused:   g.state.Paused,
	}, int32(g.screenWidth))

	g.applyActions(g.controls.Draw(&g.state, g.overlays))

	g.statsUI.Draw(g.lastStats, float32(g.cfg.Kinematics.MaxSpeed))
	if g.showPerf {
		g.perfUI.Draw(g.perfCollector.Stats())
	}

	if hasSelected {
		g.inspector.Draw(selected, leader)
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

// leaderOf returns the car the given car would follow on its next
// arrival, or nil when it would wander.
func (g *Game) leaderOf(car systems.AgentSnapshot) *systems.AgentSnapshot {
	dh, ok := g.scn.Driver(car.ID).(*systems.DriveHome)
	if !ok {
		return nil
	}
	leader, found := dh.Leader(car, g.frame)
	if !found {
		return nil
	}
	return &leader
}
