package sim

import (
	"fmt"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/messages"
	"github.com/scylladb/go-set/strset"
)

// Image snapshots the public state: players and hooks in iteration order plus
// the world.
func (s *State) Image() messages.ServerImage {
	img := messages.ServerImage{
		Players: make([]messages.PlayerImage, 0, s.players.Len()),
		Hooks:   make([]messages.HookImage, 0, s.hooks.Len()),
		World:   s.World.Image(),
	}
	for el := s.players.Front(); el != nil; el = el.Next() {
		p := el.Value
		img.Players = append(img.Players, messages.PlayerImage{
			ID:       p.ID,
			X:        p.Loc.X,
			Y:        p.Loc.Y,
			VelX:     p.Vel.X,
			VelY:     p.Vel.Y,
			Username: p.Username,
			Color:    p.Color,
		})
	}
	for el := s.hooks.Front(); el != nil; el = el.Next() {
		h := el.Value
		hi := messages.HookImage{
			ID:           h.ID,
			From:         h.From,
			To:           h.To,
			X:            h.Loc.X,
			Y:            h.Loc.Y,
			IsResetting:  h.IsResetting,
			WaitTillExit: sortedIDs(h.WaitTillExit),
		}
		if h.Vel != nil {
			hi.HasVel = true
			hi.VelX, hi.VelY = h.Vel.X, h.Vel.Y
		}
		img.Hooks = append(img.Hooks, hi)
	}
	return img
}

// Image converts the world to its wire form.
func (w World) Image() messages.WorldImage {
	out := messages.WorldImage{Radius: w.Radius}
	for _, h := range w.Holes {
		out.Holes = append(out.Holes, messages.HoleImage{X: h.Loc.X, Y: h.Loc.Y, Radius: h.Radius, Color: h.Color})
	}
	for _, sp := range w.SpawnPoints {
		out.SpawnPoints = append(out.SpawnPoints, messages.PointImage{X: sp.X, Y: sp.Y})
	}
	return out
}

// WorldFromImage is the inverse of World.Image.
func WorldFromImage(img messages.WorldImage) World {
	w := World{Radius: img.Radius}
	for _, h := range img.Holes {
		w.Holes = append(w.Holes, Hole{Loc: gamemath.V(h.X, h.Y), Radius: h.Radius, Color: h.Color})
	}
	for _, sp := range img.SpawnPoints {
		w.SpawnPoints = append(w.SpawnPoints, gamemath.V(sp.X, sp.Y))
	}
	return w
}

// Restore rebuilds a state from a snapshot. Owned and attached sets and the
// followed hook are derived from the hooks. Boost, held keys and reel
// cooldowns are not part of an image and start cleared.
func Restore(cfg config.Config, img messages.ServerImage, opts ...Option) (*State, error) {
	s := NewState(cfg, WorldFromImage(img.World), opts...)
	for _, pi := range img.Players {
		if _, dup := s.players.Get(pi.ID); dup {
			return nil, fmt.Errorf("restore: duplicate player %q", pi.ID)
		}
		p := s.addPlayer(pi.ID, pi.Username, pi.Color, gamemath.V(pi.X, pi.Y))
		p.Vel = gamemath.V(pi.VelX, pi.VelY)
	}

	for _, hi := range img.Hooks {
		owner, ok := s.infos[hi.From]
		if !ok {
			return nil, fmt.Errorf("restore: hook %q has unknown owner %q", hi.ID, hi.From)
		}
		if _, dup := s.hooks.Get(hi.ID); dup {
			return nil, fmt.Errorf("restore: duplicate hook %q", hi.ID)
		}
		h := &Hook{
			ID:           hi.ID,
			From:         hi.From,
			To:           hi.To,
			Loc:          gamemath.V(hi.X, hi.Y),
			IsResetting:  hi.IsResetting,
			WaitTillExit: strset.New(hi.WaitTillExit...),
		}
		if hi.HasVel {
			vel := gamemath.V(hi.VelX, hi.VelY)
			h.Vel = &vel
		}
		owner.Hooks.Owned.Add(h.ID)

		if h.To != "" {
			target, ok := s.infos[h.To]
			if !ok {
				return nil, fmt.Errorf("restore: hook %q attached to unknown player %q", h.ID, h.To)
			}
			target.Hooks.Attached.Add(h.ID)
			if h.Vel != nil {
				target.Hooks.FollowHook = h.ID
			}
		}
		s.hooks.Set(h.ID, h)
	}
	return s, nil
}
