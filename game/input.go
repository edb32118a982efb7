package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.state.Paused = !g.state.Paused
	}

	// Ticks-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.state.Speed > 1 {
		g.state.Speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.state.Speed < ui.MaxSpeed {
		g.state.Speed++
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.shuffle()
	}
	if rl.IsKeyPressed(rl.KeyN) && g.state.Paused {
		g.simulationStep()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
	g.handleMouse()
}

// handleOverlayKeys toggles any overlay whose key was pressed.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// applyActions carries out the buttons pressed on the controls panel.
func (g *Game) applyActions(act ui.ControlsActions) {
	if act.Shuffle {
		g.shuffle()
	}
	if act.Step {
		g.simulationStep()
		g.frame = g.scn.Snapshot()
	}
	if act.ResetCamera {
		g.camera.Reset()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.Resize(int32(w))
	g.statsUI.SetPosition(10, int32(h)-210)
	g.perfUI.SetPosition(int32(w)-260, int32(h)-110)
}

// handleMouse routes clicks to the UI, the inspector or drag panning.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		g.camera.Pan(g.dragLastX-mouse.X, g.dragLastY-mouse.Y)
		g.dragLastX, g.dragLastY = mouse.X, mouse.Y
		return
	}

	if g.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	if g.inspector.HandleInput(mouse.X, mouse.Y, g.camera, g.frame) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragging = true
		g.dragLastX, g.dragLastY = mouse.X, mouse.Y
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Screen pixels per frame
	panSpeed := float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Mouse wheel zooms about the cursor, one step per notch
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(zoomFactor(wheel, float32(g.cfg.Camera.ZoomStep)), mouse.X, mouse.Y)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// zoomFactor maps a wheel movement to a zoom multiplier: 1+step per notch
// in, 1-step per notch out.
func zoomFactor(wheel, step float32) float32 {
	if wheel > 0 {
		return 1 + step
	}
	return 1 - step
}
