package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayDestinations     OverlayID = "destinations"
	OverlayHeadingLines     OverlayID = "heading_lines"
	OverlayWheelLines       OverlayID = "wheel_lines"
	OverlayDestinationLinks OverlayID = "destination_links"
	OverlayLeaderLink       OverlayID = "leader_link"
	OverlayGrid             OverlayID = "grid"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "D")
	Category    string    // Grouping (e.g., "car", "debug")
	Default     bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays. The first three make up the
// classic car drawing and start enabled.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayDestinations,
		Name:        "Destinations",
		Description: "Circle at each car's current destination",
		Key:         rl.KeyD,
		KeyLabel:    "D",
		Category:    "car",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHeadingLines,
		Name:        "Heading",
		Description: "Line along each car's heading",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "car",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayWheelLines,
		Name:        "Wheels",
		Description: "Line along each car's steering direction",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "car",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDestinationLinks,
		Name:        "Dest Links",
		Description: "Line from each car to its destination",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayLeaderLink,
		Name:        "Leader",
		Description: "Line from the selected car to the car it would follow",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "debug",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "World grid and spawn square outline",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	r.enabled[id] = enabled
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}
