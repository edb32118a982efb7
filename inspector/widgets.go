package inspector

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/traffic/ui"
)

// Compass colors
var (
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
)

// DrawAngle renders a compass showing a heading in degrees. The needle
// points the way a car with that heading drives on screen.
func DrawAngle(r *ui.Renderer, x, y int32, name string, degrees float32) int32 {
	size := int32(36)
	centerX := x + r.Theme.LabelWidth + size/2
	centerY := y + size/2

	rl.DrawText(name+":", x, centerY-6, r.Theme.FontSize, r.Theme.LabelColor)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), r.Theme.DimColor)

	th := float64(degrees) * math.Pi / 180
	needleLen := float32(size/2 - 4)
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{
			X: float32(centerX) - needleLen*float32(math.Sin(th)),
			Y: float32(centerY) + needleLen*float32(math.Cos(th)),
		},
		2,
		ColorAngleNeedle,
	)

	rl.DrawText(fmt.Sprintf("%.1f deg", degrees), centerX+size/2+8, centerY-6, r.Theme.FontSize, r.Theme.ValueColor)

	return y + size + 4
}

// DrawField renders a field using its widget type and returns the new Y.
func DrawField(r *ui.Renderer, x, y int32, field Field, width int32) int32 {
	switch field.Widget {
	case WidgetBar:
		v, ok := GetFloatValue(field.Value)
		if !ok {
			break
		}
		lo, hi := GetRange(field.Options)
		if lo < 0 && hi == -lo {
			return r.DrawCenteredBar(x, y, field.Name, v, hi, width)
		}
		return r.DrawBar(x, y, field.Name, v, lo, hi, width)

	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(r, x, y, field.Name, v)
		}

	case WidgetColor:
		if c, ok := field.Value.(color.RGBA); ok {
			return r.DrawColorSwatch(x, y, field.Name, c)
		}
	}

	return r.DrawLabelValue(x, y, field.Name, FormatValue(field.Value, field.Options["fmt"]))
}

// DrawComponent renders every inspectable field of a component.
func DrawComponent(r *ui.Renderer, x, y int32, component any, width int32) int32 {
	for _, f := range ExtractFields(component) {
		y = DrawField(r, x, y, f, width)
	}
	return y
}
