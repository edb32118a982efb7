package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the largest ticks-per-frame setting.
const MaxSpeed = 10

// ControlsState is the run state the controls panel edits in place.
type ControlsState struct {
	Paused bool
	Speed  int // ticks per frame, 1..MaxSpeed
}

// ControlsActions reports one-shot buttons pressed this frame.
type ControlsActions struct {
	Shuffle     bool
	Step        bool
	ResetCamera bool
}

// ControlsPanel renders the run controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	// Height of the last drawn panel, for hit testing
	lastHeight int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.lastHeight)
}

// height returns the panel height for the given overlay list.
func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	rows := int32(5 + len(overlays.All()) + len(overlays.Categories()))
	return rows*(c.renderer.Theme.LineHeight+4) + c.renderer.Theme.Padding*2 + 8
}

// Draw renders the panel, applies edits to state and overlays, and returns
// the buttons pressed this frame.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) ControlsActions {
	var act ControlsActions
	if !c.visible {
		return act
	}

	r := c.renderer
	padding := r.Theme.Padding
	row := float32(r.Theme.LineHeight + 4)
	inner := float32(c.width - padding*2)

	c.lastHeight = c.height(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.lastHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += row + 2

	half := (inner - 6) / 2
	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: row - 2}, pauseText) {
		state.Paused = !state.Paused
	}
	act.Step = gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: row - 2}, "Step")
	y += row

	act.Shuffle = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: row - 2}, "Shuffle")
	act.ResetCamera = gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: row - 2}, "Home")
	y += row

	speed := gui.Slider(
		rl.Rectangle{X: x + 40, Y: y, Width: inner - 80, Height: row - 4},
		"Speed", fmt.Sprintf("%dx", state.Speed),
		float32(state.Speed), 1, MaxSpeed,
	)
	state.Speed = min(max(int(speed+0.5), 1), MaxSpeed)
	y += row + 4

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += row

		for _, desc := range overlays.ByCategory(category) {
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			enabled := overlays.IsEnabled(desc.ID)
			box := rl.Rectangle{X: x, Y: y + 1, Width: 12, Height: 12}
			if next := gui.CheckBox(box, label, enabled); next != enabled {
				overlays.SetEnabled(desc.ID, next)
			}
			y += row
		}
	}

	return act
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "car":
		return "Cars"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
