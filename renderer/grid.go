package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Grid colors
var (
	ColorGrid        = rl.Color{R: 40, G: 40, B: 48, A: 255}
	ColorGridAxis    = rl.Color{R: 70, G: 70, B: 90, A: 255}
	ColorSpawnBorder = rl.Color{R: 90, G: 90, B: 40, A: 255}
)

// GridSpacing returns a spacing for grid lines that keeps them at least
// minPixels apart on screen at the given zoom.
func GridSpacing(zoom, minPixels float32) float32 {
	spacing := float32(100)
	for spacing*zoom < minPixels {
		spacing *= 10
	}
	for spacing*zoom >= minPixels*10 && spacing > 1 {
		spacing /= 10
	}
	return spacing
}

// DrawGrid draws grid lines covering the given world bounds. Lines through
// the origin are drawn brighter.
func DrawGrid(minX, minY, maxX, maxY, spacing, zoom float32) {
	thick := 1 / zoom

	startX := float32(math.Floor(float64(minX/spacing))) * spacing
	for x := startX; x <= maxX; x += spacing {
		color := ColorGrid
		if x == 0 {
			color = ColorGridAxis
		}
		rl.DrawLineEx(rl.Vector2{X: x, Y: minY}, rl.Vector2{X: x, Y: maxY}, thick, color)
	}

	startY := float32(math.Floor(float64(minY/spacing))) * spacing
	for y := startY; y <= maxY; y += spacing {
		color := ColorGrid
		if y == 0 {
			color = ColorGridAxis
		}
		rl.DrawLineEx(rl.Vector2{X: minX, Y: y}, rl.Vector2{X: maxX, Y: y}, thick, color)
	}
}

// DrawSpawnSquare outlines the square [0, extent)² new cars are placed in.
func DrawSpawnSquare(extent, zoom float32) {
	rl.DrawRectangleLinesEx(rl.Rectangle{X: 0, Y: 0, Width: extent, Height: extent}, 1/zoom, ColorSpawnBorder)
}
