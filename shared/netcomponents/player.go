package netcomponents

import "github.com/yohamta/donburi"

type NetPlayerData struct {
	ID         string
	X, Y       float64
	VelX, VelY float64 // Client extrapolation between snapshots
	Username   string
	Color      string
	// Following is true while a hook is reeling this player in.
	Following bool
}

var NetPlayer = donburi.NewComponentType[NetPlayerData]()

// LerpNetPlayer interpolates between two player states
func LerpNetPlayer(from, to NetPlayerData, t float64) *NetPlayerData {
	return &NetPlayerData{
		ID:        to.ID,
		X:         from.X + (to.X-from.X)*t,
		Y:         from.Y + (to.Y-from.Y)*t,
		VelX:      to.VelX,
		VelY:      to.VelY,
		Username:  to.Username,
		Color:     to.Color,
		Following: to.Following,
	}
}
