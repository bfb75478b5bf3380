// Package leveldata provides TMX world parsing shared between client and server.
// It has no dependencies on donburi, resolv or the transport - pure data only.
package leveldata

// WorldData holds the static geometry parsed from a TMX world file.
type WorldData struct {
	Name        string
	Radius      float64 // circular boundary radius, centered on the origin
	Holes       []Hole
	SpawnPoints []SpawnPoint
}

// Hole is a circular obstacle drawn by clients.
type Hole struct {
	X, Y   float64 // center
	Radius float64
	Color  string
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
