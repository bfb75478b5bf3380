package sim

import "github.com/automoto/hookshot/shared/gamemath"

// velocity combines walking and boost into the player's velocity for this
// tick.
func (s *State) velocity(info *PlayerInfo) gamemath.Vec2 {
	speed := s.cfg.Player.WalkSpeed
	if info.Hooks.FollowHook != "" {
		speed = s.cfg.Player.WalkSpeedHooked
	}

	vel := info.Walk.DirectionPressed.WithLength(speed)
	if info.Boost.Active() {
		boost := info.Boost.Effective(s.cfg.Boost.MultEffectiveMax) * speed
		vel = vel.Add(info.Boost.Dir.WithLength(boost))
	}
	return vel
}

// movePlayers runs cooldown decay, boost decay, velocity and integration for
// every player.
func (s *State) movePlayers(dt float64) {
	for el := s.players.Front(); el != nil; el = el.Next() {
		p := el.Value
		info := s.infos[p.ID]

		if info.Hooks.ReelCooldown > 0 {
			info.Hooks.ReelCooldown -= dt
			if info.Hooks.ReelCooldown <= 0 {
				info.Hooks.ReelCooldown = 0
			}
		}

		info.Boost.decay(s.cfg.Boost, dt)
		p.Vel = s.velocity(info)
		p.Loc = p.Loc.Add(p.Vel.Scale(dt))
	}
}

// confinePlayers keeps every player being reeled within reach of the hook
// pulling it.
func (s *State) confinePlayers() {
	for el := s.players.Front(); el != nil; el = el.Next() {
		p := el.Value
		info := s.infos[p.ID]
		if info.Hooks.FollowHook == "" {
			continue
		}
		h, ok := s.hooks.Get(info.Hooks.FollowHook)
		if !ok {
			info.Hooks.FollowHook = ""
			continue
		}
		p.Loc = gamemath.Confine(p.Loc, h.Loc, s.cfg.Player.FollowRadius)
	}
}
