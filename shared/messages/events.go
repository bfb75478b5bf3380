package messages

// PlayerJoinedEvent is broadcast when a player enters the world.
type PlayerJoinedEvent struct {
	PlayerID string
	Username string
	Color    string
	X, Y     float64
}

// PlayerLeftEvent is broadcast after a player's disconnect has been applied.
type PlayerLeftEvent struct {
	PlayerID string
}
