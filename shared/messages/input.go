package messages

// GoInDirection is sent when a direction key goes down. Direction is one of
// "up", "down", "left" or "right".
type GoInDirection struct {
	Direction string
}

// StopInDirection is sent when a direction key comes up.
type StopInDirection struct {
	Direction string
}

// ThrowHook throws the player's hook along (X, Y), relative to the player.
type ThrowHook struct {
	X, Y float64
}

// ReelHooks reels in every hook the player owns.
type ReelHooks struct{}
