package sim

import (
	"math/bits"

	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/netconfig"
)

// KeySet is the set of movement keys currently held.
type KeySet uint8

func (k KeySet) Has(d netconfig.Direction) bool { return k&(1<<d) != 0 }

func (k KeySet) Len() int { return bits.OnesCount8(uint8(k)) }

func (k *KeySet) add(d netconfig.Direction) { *k |= 1 << d }

func (k *KeySet) remove(d netconfig.Direction) { *k &^= 1 << d }

// Walk tracks held movement keys. DirectionPressed is the raw sum of their
// unit vectors and is normalized only when turned into a velocity.
type Walk struct {
	DirectionPressed gamemath.Vec2
	KeysPressed      KeySet
}

// Press starts moving the player in dir. Pressing a held key, an unknown
// player or an invalid direction does nothing. It reports whether state
// changed.
func (s *State) Press(playerID string, dir netconfig.Direction) bool {
	info, ok := s.infos[playerID]
	if !ok || !dir.Valid() || info.Walk.KeysPressed.Has(dir) {
		return false
	}
	info.Walk.KeysPressed.add(dir)
	info.Walk.DirectionPressed = info.Walk.DirectionPressed.Add(dir.Unit())
	info.Boost.onPress(s.cfg.Boost, info.Walk.KeysPressed, dir)
	return true
}

// Release is the inverse of Press.
func (s *State) Release(playerID string, dir netconfig.Direction) bool {
	info, ok := s.infos[playerID]
	if !ok || !dir.Valid() || !info.Walk.KeysPressed.Has(dir) {
		return false
	}
	info.Walk.KeysPressed.remove(dir)
	info.Walk.DirectionPressed = info.Walk.DirectionPressed.Sub(dir.Unit())
	info.Boost.onRelease(info.Walk.KeysPressed, dir)
	return true
}
