// Package renderer draws the car population in world space.
// Everything here must be called between rl.BeginMode2D and rl.EndMode2D.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/camera"
	"github.com/pthm-cable/traffic/systems"
	"github.com/pthm-cable/traffic/ui"
)

// Car body and marker dimensions in world units.
const (
	BodyWidth         = 10
	BodyLength        = 20
	LineLength        = 50
	LineWidth         = 1
	DestinationRadius = 5
)

// Culling margin around a car, enough to cover its heading and wheel lines.
const cullRadius = LineLength

// CarStyle selects which parts of a car are drawn.
type CarStyle struct {
	Heading         bool
	Wheels          bool
	Destination     bool
	DestinationLink bool
}

// StyleFromOverlays reads the car overlays from reg.
func StyleFromOverlays(reg *ui.OverlayRegistry) CarStyle {
	return CarStyle{
		Heading:         reg.IsEnabled(ui.OverlayHeadingLines),
		Wheels:          reg.IsEnabled(ui.OverlayWheelLines),
		Destination:     reg.IsEnabled(ui.OverlayDestinations),
		DestinationLink: reg.IsEnabled(ui.OverlayDestinationLinks),
	}
}

// Camera2D converts the view camera to a raylib camera.
func Camera2D(cam *camera.Camera) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: cam.ViewportW / 2, Y: cam.ViewportH / 2},
		Target: rl.Vector2{X: cam.X, Y: cam.Y},
		Zoom:   cam.Zoom,
	}
}

// DrawCars draws every car that could be on screen.
func DrawCars(cars []systems.AgentSnapshot, style CarStyle, cam *camera.Camera) {
	for i := range cars {
		car := &cars[i]
		onScreen := cam.IsVisible(car.Location.X, car.Location.Y, cullRadius)
		destOnScreen := style.Destination &&
			cam.IsVisible(car.Destination.Location.X, car.Destination.Location.Y, DestinationRadius)
		if !onScreen && !destOnScreen && !style.DestinationLink {
			continue
		}
		DrawCar(car, style)
	}
}

// DrawCar draws one car: a body rotated to its heading, a line along the
// heading, a line along the steered wheels and a dot on its destination,
// all in the car's color. A heading of 0 points the car along +Y.
func DrawCar(car *systems.AgentSnapshot, style CarStyle) {
	color := car.Color
	loc := car.Location

	rl.DrawRectanglePro(
		rl.Rectangle{X: loc.X, Y: loc.Y, Width: BodyWidth, Height: BodyLength},
		rl.Vector2{X: BodyWidth / 2, Y: BodyLength / 2},
		car.Heading,
		color,
	)

	if style.Heading {
		drawLine(loc.X, loc.Y, car.Heading, color)
	}
	if style.Wheels {
		drawLine(loc.X, loc.Y, car.Heading+car.WheelAngle, color)
	}

	dest := car.Destination.Location
	if style.DestinationLink {
		faded := color
		faded.A = 80
		rl.DrawLineV(rl.Vector2{X: loc.X, Y: loc.Y}, rl.Vector2{X: dest.X, Y: dest.Y}, faded)
	}
	if style.Destination {
		rl.DrawCircleV(rl.Vector2{X: dest.X, Y: dest.Y}, DestinationRadius, color)
	}
}

// drawLine draws a thin bar from just behind (x, y) forward along angle degrees.
func drawLine(x, y, angle float32, color rl.Color) {
	rl.DrawRectanglePro(
		rl.Rectangle{X: x, Y: y, Width: LineWidth, Height: LineLength},
		rl.Vector2{X: LineWidth / 2, Y: BodyLength / 2},
		angle,
		color,
	)
}
