package sim

import (
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/leveldata"
)

// World is the static geometry of the arena. The simulation never mutates it.
type World struct {
	Radius      float64
	Holes       []Hole
	SpawnPoints []gamemath.Vec2
}

// Hole is a circular obstacle.
type Hole struct {
	Loc    gamemath.Vec2
	Radius float64
	Color  string
}

// WorldFromData converts parsed TMX geometry.
func WorldFromData(data *leveldata.WorldData) World {
	w := World{Radius: data.Radius}
	for _, h := range data.Holes {
		w.Holes = append(w.Holes, Hole{Loc: gamemath.V(h.X, h.Y), Radius: h.Radius, Color: h.Color})
	}
	for _, sp := range data.SpawnPoints {
		w.SpawnPoints = append(w.SpawnPoints, gamemath.V(sp.X, sp.Y))
	}
	return w
}
