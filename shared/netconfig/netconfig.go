// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must stay free of transport and ECS imports so
// any client can decode them.
package netconfig

import "github.com/automoto/hookshot/shared/gamemath"

// Direction is one of the four movement keys. The zero value is DirNone.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four movement keys in a fixed order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

var directionNames = map[Direction]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

// ParseDirection maps a wire name to a Direction. Unknown names report false.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return d, true
		}
	}
	return DirNone, false
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return "none"
}

func (d Direction) Valid() bool { return d >= DirUp && d <= DirRight }

// Unit returns the axis-aligned unit vector for d; up is +Y. DirNone maps to
// the zero vector.
func (d Direction) Unit() gamemath.Vec2 {
	switch d {
	case DirUp:
		return gamemath.V(0, 1)
	case DirDown:
		return gamemath.V(0, -1)
	case DirLeft:
		return gamemath.V(-1, 0)
	case DirRight:
		return gamemath.V(1, 0)
	}
	return gamemath.Zero
}

// Opposite reports whether d and o lie on the same axis pointing opposite ways.
func (d Direction) Opposite(o Direction) bool {
	switch d {
	case DirUp:
		return o == DirDown
	case DirDown:
		return o == DirUp
	case DirLeft:
		return o == DirRight
	case DirRight:
		return o == DirLeft
	}
	return false
}

// Vertical reports whether d is up or down.
func (d Direction) Vertical() bool { return d == DirUp || d == DirDown }

// HookState is the lifecycle state of a hook as seen by clients.
type HookState int

const (
	HookFlying HookState = iota
	HookTracking
	HookReeling
	HookResetting
)

func (s HookState) String() string {
	switch s {
	case HookFlying:
		return "flying"
	case HookTracking:
		return "tracking"
	case HookReeling:
		return "reeling"
	case HookResetting:
		return "resetting"
	}
	return "unknown"
}
