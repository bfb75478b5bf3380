package messages

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version  string
	Username string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// Image is the full state at the moment of joining.
type JoinAccepted struct {
	PlayerID     string
	ServerName   string
	TickRate     int
	PlayerRadius float64
	HookRadius   float64
	Image        ServerImage
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
