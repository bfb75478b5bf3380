package netcomponents

import "github.com/yohamta/donburi"

type NetHole struct {
	X, Y   float64
	Radius float64
	Color  string
}

// NetWorldData is the static arena geometry. It never changes after startup.
type NetWorldData struct {
	Radius float64
	Holes  []NetHole
}

var NetWorld = donburi.NewComponentType[NetWorldData]()
