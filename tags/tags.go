package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Hook   = donburi.NewTag().SetName("Hook")
	World  = donburi.NewTag().SetName("World")
)

// Resolv tags for the per-tick collision index
const (
	ResolvPlayer = "Player"
	ResolvHook   = "Hook"
)
