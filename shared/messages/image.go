package messages

// ServerImage is a full snapshot of the simulated world.
type ServerImage struct {
	Players []PlayerImage
	Hooks   []HookImage
	World   WorldImage
}

type PlayerImage struct {
	ID       string
	X, Y     float64
	VelX     float64
	VelY     float64
	Username string
	Color    string
}

// HookImage describes one hook. HasVel is false while the hook tracks the
// player it is attached to.
type HookImage struct {
	ID           string
	From         string
	To           string
	X, Y         float64
	VelX, VelY   float64
	HasVel       bool
	IsResetting  bool
	WaitTillExit []string
}

type WorldImage struct {
	Radius      float64
	Holes       []HoleImage
	SpawnPoints []PointImage
}

type HoleImage struct {
	X, Y   float64
	Radius float64
	Color  string
}

type PointImage struct {
	X, Y float64
}
