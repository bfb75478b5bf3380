package sim

import (
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/scylladb/go-set/strset"
)

// ThrowHook launches a hook from the player toward aim. A player may have one
// hook out at a time; further throws, unknown players and zero or non-finite
// aims are ignored. It returns the new hook's id.
func (s *State) ThrowHook(playerID string, aim gamemath.Vec2) (string, bool) {
	p, ok := s.players.Get(playerID)
	if !ok {
		return "", false
	}
	info := s.infos[playerID]
	if info.Hooks.Owned.Size() >= 1 {
		return "", false
	}
	if !aim.IsFinite() || aim.Magnitude() == 0 {
		return "", false
	}

	vel := gamemath.ThrowVelocity(aim, p.Vel, s.cfg.Hook.ThrowSpeed)
	h := &Hook{
		ID:   s.newID(),
		From: playerID,
		Loc:  gamemath.ThrowOrigin(p.Loc, aim, s.cfg.Player.Radius),
		Vel:  &vel,
		// The thrower starts inside its own hook.
		WaitTillExit: strset.New(playerID),
	}
	s.hooks.Set(h.ID, h)
	info.Hooks.Owned.Add(h.ID)
	return h.ID, true
}

// ReelHooks pulls every attached hook of the player toward it and sends every
// unattached one back. It is ignored while the reel cooldown runs or when the
// player owns no hooks.
func (s *State) ReelHooks(playerID string) bool {
	owner, ok := s.players.Get(playerID)
	if !ok {
		return false
	}
	info := s.infos[playerID]
	if info.Hooks.ReelCooldown > 0 || info.Hooks.Owned.Size() == 0 {
		return false
	}

	for _, hid := range sortedIDs(info.Hooks.Owned) {
		h, ok := s.hooks.Get(hid)
		if !ok {
			continue
		}
		if h.To == "" {
			s.detachHook(h, true)
			s.resetHook(h)
			continue
		}

		vel := gamemath.ReelVelocity(h.Loc, owner.Loc, owner.Vel, s.cfg.Hook.ReelMinSpeed)
		target := s.infos[h.To]
		target.Hooks.FollowHook = h.ID
		// Only one hook pulls a player at a time; the rest just ride along.
		target.Hooks.Attached.Each(func(other string) bool {
			if oh, ok := s.hooks.Get(other); ok {
				oh.Vel = nil
			}
			return true
		})
		h.Vel = &vel
	}

	info.Hooks.ReelCooldown = s.cfg.Hook.ReelCooldown
	return true
}

func (s *State) attachHook(h *Hook, playerID string) {
	h.To = playerID
	h.Vel = nil
	h.IsResetting = false
	s.infos[playerID].Hooks.Attached.Add(h.ID)
}

// unlink removes the player-side references to h's target and clears the
// owner's reel cooldown once all of its hooks are gone.
func (s *State) unlink(h *Hook) {
	if h.To != "" {
		if target, ok := s.infos[h.To]; ok {
			target.Hooks.Attached.Remove(h.ID)
			if target.Hooks.FollowHook == h.ID {
				target.Hooks.FollowHook = ""
			}
		}
	}
	if owner, ok := s.infos[h.From]; ok && owner.Hooks.Owned.Size() == 0 {
		owner.Hooks.ReelCooldown = 0
	}
}

// detachHook releases h from its target. With guard set the former target
// must leave the hook before it can be caught again.
func (s *State) detachHook(h *Hook, guard bool) {
	s.unlink(h)
	if h.To == "" {
		return
	}
	if guard {
		h.WaitTillExit.Add(h.To)
	}
	h.To = ""
}

func (s *State) deleteHook(h *Hook) {
	if owner, ok := s.infos[h.From]; ok {
		owner.Hooks.Owned.Remove(h.ID)
	}
	s.unlink(h)
	s.hooks.Delete(h.ID)
}

// resetHook sends an unattached hook back to its owner.
func (s *State) resetHook(h *Hook) {
	h.IsResetting = true
	s.steerHome(h)
}

func (s *State) steerHome(h *Hook) {
	owner, ok := s.players.Get(h.From)
	if !ok {
		return
	}
	vel := gamemath.HomingVelocity(h.Loc, owner.Loc, s.cfg.Hook.ResetSpeed)
	h.Vel = &vel
}

// resolveHooks applies the distance cutoff and player collisions to every
// hook. Players do not move during this pass.
func (s *State) resolveHooks() {
	s.index.rebuild(s.Players(), s.Hooks())

	for _, hid := range s.hooks.Keys() {
		h, ok := s.hooks.Get(hid)
		if !ok {
			continue
		}
		owner, ok := s.players.Get(h.From)
		if !ok {
			// Owners delete their hooks on leave; this only guards restored
			// images that break that rule.
			s.deleteHook(h)
			continue
		}

		if gamemath.Distance(owner.Loc, h.Loc) > s.cfg.Hook.CutoffDistance {
			s.detachHook(h, true)
			s.resetHook(h)
			continue
		}
		s.collide(h)
	}
}

// collide resolves one hook against the players it overlaps, in join order.
func (s *State) collide(h *Hook) {
	pr, hr := s.cfg.Player.Radius, s.cfg.Hook.Radius

	for _, pid := range h.WaitTillExit.List() {
		p, ok := s.players.Get(pid)
		if !ok || !gamemath.Collided(p.Loc, h.Loc, pr, hr) {
			h.WaitTillExit.Remove(pid)
		}
	}

	for _, p := range s.index.candidates(h.Loc) {
		if !gamemath.Collided(p.Loc, h.Loc, pr, hr) || h.WaitTillExit.Has(p.ID) {
			continue
		}

		if p.ID == h.From {
			s.deleteHook(h)
			return
		}
		if h.To != "" {
			continue
		}

		// Two players hooking each other cancel both hooks.
		for _, other := range sortedIDs(s.infos[p.ID].Hooks.Owned) {
			oh, ok := s.hooks.Get(other)
			if ok && oh.To == h.From {
				s.deleteHook(h)
				s.deleteHook(oh)
				return
			}
		}
		s.attachHook(h, p.ID)
	}
}

// moveHooks steers resetting hooks home and integrates every hook that has a
// velocity.
func (s *State) moveHooks(dt float64) {
	for el := s.hooks.Front(); el != nil; el = el.Next() {
		h := el.Value
		if h.IsResetting {
			s.steerHome(h)
		}
		if h.Vel != nil {
			h.Loc = h.Loc.Add(h.Vel.Scale(dt))
		}
	}
}

// snapTrackingHooks moves every attached, non-reeling hook onto its target.
func (s *State) snapTrackingHooks() {
	for el := s.hooks.Front(); el != nil; el = el.Next() {
		h := el.Value
		if h.Vel != nil {
			continue
		}
		if target, ok := s.players.Get(h.To); ok {
			h.Loc = target.Loc
		}
	}
}
