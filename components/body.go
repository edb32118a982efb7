package components

// Limits holds per-car constants fixed at construction.
type Limits struct {
	TurnRate     float32 `inspect:"label,fmt:%.1f"` // max wheel slew, degrees per substep
	Acceleration float32 `inspect:"label,fmt:%.2f"` // speed changes by sqrt(Acceleration) per substep
}
