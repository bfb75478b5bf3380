package netcomponents

import (
	"github.com/automoto/hookshot/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetHookData struct {
	ID         string
	From       string // owning player
	To         string // attached player, "" while unattached
	X, Y       float64
	VelX, VelY float64
	State      netconfig.HookState
}

var NetHook = donburi.NewComponentType[NetHookData]()

// LerpNetHook interpolates between two hook states. A hook that changed
// target snaps instead of sliding between players.
func LerpNetHook(from, to NetHookData, t float64) *NetHookData {
	out := to
	if from.To == to.To {
		out.X = from.X + (to.X-from.X)*t
		out.Y = from.Y + (to.Y-from.Y)*t
	}
	return &out
}
