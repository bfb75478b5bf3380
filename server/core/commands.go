package core

import "github.com/automoto/hookshot/shared/messages"

// Session is one connected client as the game loop sees it.
// *router.NetworkClient satisfies it.
type Session interface {
	Id() string
	SendMessage(msg any) error
}

// Commands are queued on GameLoop.Inbox by transport callbacks and applied
// between ticks in arrival order.

// Join asks for a player for Session. The loop answers on Reply with either
// messages.JoinAccepted or messages.JoinRejected.
type Join struct {
	Session Session
	Request messages.JoinRequest
	Reply   chan any
}

// Leave removes the session's player, if any.
type Leave struct {
	SessionID string
}

type Press struct {
	SessionID string
	Direction string
}

type Release struct {
	SessionID string
	Direction string
}

type Throw struct {
	SessionID string
	X, Y      float64
}

type Reel struct {
	SessionID string
}
