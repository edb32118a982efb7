// Package inspector shows the live state of a selected car.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/camera"
	"github.com/pthm-cable/traffic/components"
	"github.com/pthm-cable/traffic/systems"
	"github.com/pthm-cable/traffic/ui"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// PickRadius is how close, in screen pixels, a click must land to a car.
const PickRadius = 14

// Panel colors
var (
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// Inspector manages car selection and panel rendering.
type Inspector struct {
	renderer *ui.Renderer

	selected    uint32
	hasSelected bool

	panelX, panelY int32
	panelHeight    int32
}

// NewInspector creates a new inspector anchored to the top right.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		renderer:    ui.NewRenderer(),
		panelX:      screenWidth - PanelWidth - 10,
		panelY:      10,
		panelHeight: 420,
	}
}

// Resize re-anchors the panel for a new screen width.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Pick returns the car nearest (wx, wy) within radius world units.
// Ties go to the car that comes first in cars.
func Pick(wx, wy, radius float32, cars []systems.AgentSnapshot) (uint32, bool) {
	best := -1
	bestDist := radius * radius
	for i := range cars {
		dx := cars[i].Location.X - wx
		dy := cars[i].Location.Y - wy
		if d := dx*dx + dy*dy; d <= bestDist && (best < 0 || d < bestDist) {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 0, false
	}
	return cars[best].ID, true
}

// HandleInput processes clicks for selection. It returns true when the
// click was consumed by the inspector (selection change or panel hit).
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, cars []systems.AgentSnapshot) bool {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return false
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	if ins.hasSelected {
		closeX := float32(ins.panelX + PanelWidth - 25)
		closeY := float32(ins.panelY + 5)
		if mouseX >= closeX && mouseX <= closeX+20 && mouseY >= closeY && mouseY <= closeY+20 {
			ins.Deselect()
			return true
		}
		if ins.InPanel(mouseX, mouseY) {
			return true
		}
	}

	wx, wy := cam.ScreenToWorld(mouseX, mouseY)
	if id, ok := Pick(wx, wy, PickRadius/cam.Zoom, cars); ok {
		ins.Select(id)
		return true
	}
	return false
}

// InPanel reports whether a screen point is on the open panel.
func (ins *Inspector) InPanel(x, y float32) bool {
	return ins.hasSelected &&
		x >= float32(ins.panelX) && x <= float32(ins.panelX+PanelWidth) &&
		y >= float32(ins.panelY) && y <= float32(ins.panelY+ins.panelHeight)
}

// Select marks a car as selected.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the ID of the selected car.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Find returns the selected car from cars.
func (ins *Inspector) Find(cars []systems.AgentSnapshot) (systems.AgentSnapshot, bool) {
	if !ins.hasSelected {
		return systems.AgentSnapshot{}, false
	}
	for i := range cars {
		if cars[i].ID == ins.selected {
			return cars[i], true
		}
	}
	return systems.AgentSnapshot{}, false
}

// Draw renders the inspector panel for car. leader is the car it would
// follow on its next arrival, if any.
func (ins *Inspector) Draw(car systems.AgentSnapshot, leader *systems.AgentSnapshot) {
	r := ins.renderer

	r.DrawPanel(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, rl.White)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	width := int32(PanelWidth - 2*PanelPadding)

	y = DrawComponent(r, x, y, components.Identity{ID: car.ID, Name: car.Name, Color: car.Color}, width)
	y = r.DrawSeparator(x, y, width)

	y = r.DrawSectionHeader(x, y, "Motion")
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", car.Location.X, car.Location.Y))
	y = DrawComponent(r, x, y, components.Kinematics{Heading: car.Heading, WheelAngle: car.WheelAngle, Speed: car.Speed}, width)
	y = DrawComponent(r, x, y, components.Limits{TurnRate: car.TurnRate, Acceleration: car.Acceleration}, width)
	y = r.DrawSeparator(x, y, width)

	y = r.DrawSectionHeader(x, y, "Destination")
	dest := car.Destination
	d := car.Location.Sub(dest.Location)
	y = r.DrawLabelValue(x, y, "Location", fmt.Sprintf("(%.0f, %.0f)", dest.Location.X, dest.Location.Y))
	y = r.DrawLabelValue(x, y, "Distance", fmt.Sprintf("%.0f (arrive < %.0f)", math.Hypot(float64(d.X), float64(d.Y)), dest.Speed))
	y = DrawComponent(r, x, y, dest, width)
	y = r.DrawSeparator(x, y, width)

	y = r.DrawSectionHeader(x, y, "Leader")
	if leader != nil {
		y = r.DrawLabelValue(x, y, "Following", leader.Name)
		y = r.DrawColorSwatch(x, y, "Color", leader.Color)
	} else {
		y = r.DrawLabelValue(x, y, "Following", "nobody (wandering)")
	}

	ins.panelHeight = y - ins.panelY + PanelPadding
}

// DrawSelectionHighlight draws, in world space, a ring around the selected
// car, a link to its destination and optionally a link to its leader.
func (ins *Inspector) DrawSelectionHighlight(car systems.AgentSnapshot, leader *systems.AgentSnapshot, zoom float32) {
	theme := ins.renderer.Theme
	pos := rl.Vector2{X: car.Location.X, Y: car.Location.Y}
	thick := 1 / zoom

	rl.DrawRing(pos, 16-thick, 16+thick, 0, 360, 32, theme.Highlight)
	rl.DrawLineEx(pos, rl.Vector2{X: car.Destination.Location.X, Y: car.Destination.Location.Y}, thick, theme.DimColor)

	if leader != nil {
		rl.DrawLineEx(pos, rl.Vector2{X: leader.Location.X, Y: leader.Location.Y}, 2*thick, theme.Highlight)
		rl.DrawCircleLines(int32(leader.Location.X), int32(leader.Location.Y), 12, theme.Highlight)
	}
}
