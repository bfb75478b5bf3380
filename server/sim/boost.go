package sim

import (
	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/netconfig"
)

// Boost is the flick-boost state machine of one player. A flick is a quick
// opposite-direction double tap while a perpendicular key is held; it grants
// a decaying speed multiplier toward the held key.
//
// Dir == nil, Key == DirNone and Multiplier == 0 always hold together.
type Boost struct {
	Dir        *gamemath.Vec2
	Key        netconfig.Direction
	Multiplier float64
	// RecentKeys holds the second most recent and the most recent distinct
	// key presses.
	RecentKeys       [2]netconfig.Direction
	RecentKeysRepeat bool
}

// Active reports whether a boost is running.
func (b *Boost) Active() bool { return b.Dir != nil }

// Effective is the multiplier applied to velocity. The stored multiplier may
// exceed max as a buffer against decay.
func (b *Boost) Effective(max float64) float64 {
	if b.Multiplier > max {
		return max
	}
	return b.Multiplier
}

func (b *Boost) reset() {
	*b = Boost{}
}

// set adds inc to the multiplier and points the boost at key. A multiplier
// that drops to zero or below ends the boost.
func (b *Boost) set(key netconfig.Direction, inc float64) {
	b.Multiplier += inc
	if b.Multiplier <= 0 {
		b.reset()
		return
	}
	dir := key.Unit()
	b.Dir = &dir
	b.Key = key
}

func (b *Boost) recordKey(key netconfig.Direction) {
	if key == b.RecentKeys[1] {
		b.RecentKeysRepeat = true
		return
	}
	b.RecentKeysRepeat = false
	b.RecentKeys[0] = b.RecentKeys[1]
	b.RecentKeys[1] = key
}

// singleOrthogonal returns the one held key perpendicular to d, or DirNone
// when zero or both perpendicular keys are held.
func singleOrthogonal(held KeySet, d netconfig.Direction) netconfig.Direction {
	a, b := netconfig.DirUp, netconfig.DirDown
	if d.Vertical() {
		a, b = netconfig.DirLeft, netconfig.DirRight
	}
	switch {
	case held.Has(a) && !held.Has(b):
		return a
	case held.Has(b) && !held.Has(a):
		return b
	}
	return netconfig.DirNone
}

func (b *Boost) onPress(cfg config.BoostConfig, held KeySet, key netconfig.Direction) {
	b.recordKey(key)

	prev, last := b.RecentKeys[0], b.RecentKeys[1]
	if prev == netconfig.DirNone {
		return
	}
	flick := prev.Opposite(last)
	target := singleOrthogonal(held, last)

	if !b.Active() {
		if flick && target != netconfig.DirNone {
			b.set(target, cfg.StartIncrement)
		}
		return
	}

	switch {
	case target == netconfig.DirNone:
		b.reset()
	case target == b.Key && !b.RecentKeysRepeat && flick:
		b.set(target, cfg.ExtendIncrement)
	case target == b.Key && b.RecentKeysRepeat:
		b.set(target, cfg.RepeatPenalty)
	case last.Opposite(b.Key):
		b.set(target, cfg.RedirectIncrement)
	}
}

// onRelease ends the boost when no key is left, or when the boost key itself
// is released and the remaining keys are not exactly one.
func (b *Boost) onRelease(held KeySet, key netconfig.Direction) {
	if !b.Active() {
		return
	}
	if held.Len() == 0 || (key == b.Key && held.Len() != 1) {
		b.reset()
	}
}

// decay runs one step of dm/dt = -(A*m^2 + B + C/(m + D)) for dt ms. The
// quadratic term bleeds large boosts quickly and the rational term keeps small
// ones from stalling.
func (b *Boost) decay(cfg config.BoostConfig, dt float64) {
	if !b.Active() {
		return
	}
	m := b.Multiplier
	m -= dt * (cfg.DecayA*m*m + cfg.DecayB + cfg.DecayC/(m+cfg.DecayD))
	if m <= 0 {
		b.reset()
		return
	}
	if m > cfg.MultMax {
		m = cfg.MultMax
	}
	b.Multiplier = m
}
