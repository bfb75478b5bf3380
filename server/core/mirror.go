package core

import (
	"github.com/automoto/hookshot/server/sim"
	"github.com/automoto/hookshot/shared/netcomponents"
	"github.com/automoto/hookshot/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Tracker marks a new entity for network sync.
type Tracker func(w donburi.World, e *donburi.Entity) error

// Trackers registers mirrored entities with necs, one per entity kind.
type Trackers struct {
	Player Tracker
	Hook   Tracker
	World  Tracker
}

// NetworkTrackers syncs players and hooks with interpolation and the world
// without.
func NetworkTrackers() Trackers {
	return Trackers{
		Player: func(w donburi.World, e *donburi.Entity) error {
			return srvsync.NetworkSync(w, e, srvsync.WithInterp(netcomponents.NetPlayer))
		},
		Hook: func(w donburi.World, e *donburi.Entity) error {
			return srvsync.NetworkSync(w, e, srvsync.WithInterp(netcomponents.NetHook))
		},
		World: func(w donburi.World, e *donburi.Entity) error {
			return srvsync.NetworkSync(w, e, netcomponents.NetWorld)
		},
	}
}

// Mirror copies the simulation into donburi entities each tick. Entities are
// created for new players and hooks and removed once they leave the
// simulation.
type Mirror struct {
	world    donburi.World
	track    Trackers
	players  map[string]donburi.Entity
	hooks    map[string]donburi.Entity
	worldEnt *donburi.Entity
	log      *logrus.Entry
}

func NewMirror(world donburi.World, track Trackers) *Mirror {
	return &Mirror{
		world:   world,
		track:   track,
		players: make(map[string]donburi.Entity),
		hooks:   make(map[string]donburi.Entity),
		log:     logrus.WithField("component", "mirror"),
	}
}

// Update brings the entities in line with s.
func (m *Mirror) Update(s *sim.State) {
	if m.worldEnt == nil {
		m.createWorld(s.World)
	}

	seen := make(map[string]struct{}, s.NumPlayers())
	for _, p := range s.Players() {
		seen[p.ID] = struct{}{}
		entry, ok := m.entry(m.players, p.ID, tags.Player, netcomponents.NetPlayer, m.track.Player)
		if !ok {
			continue
		}
		info, _ := s.Info(p.ID)
		netcomponents.NetPlayer.Set(entry, &netcomponents.NetPlayerData{
			ID:        p.ID,
			X:         p.Loc.X,
			Y:         p.Loc.Y,
			VelX:      p.Vel.X,
			VelY:      p.Vel.Y,
			Username:  p.Username,
			Color:     p.Color,
			Following: info != nil && info.Hooks.FollowHook != "",
		})
	}
	m.prune(m.players, seen)

	seen = make(map[string]struct{}, s.NumHooks())
	for _, h := range s.Hooks() {
		seen[h.ID] = struct{}{}
		entry, ok := m.entry(m.hooks, h.ID, tags.Hook, netcomponents.NetHook, m.track.Hook)
		if !ok {
			continue
		}
		data := &netcomponents.NetHookData{
			ID:    h.ID,
			From:  h.From,
			To:    h.To,
			X:     h.Loc.X,
			Y:     h.Loc.Y,
			State: h.State(),
		}
		if h.Vel != nil {
			data.VelX, data.VelY = h.Vel.X, h.Vel.Y
		}
		netcomponents.NetHook.Set(entry, data)
	}
	m.prune(m.hooks, seen)
}

// Players returns the number of mirrored players.
func (m *Mirror) Players() int { return len(m.players) }

// Hooks returns the number of mirrored hooks.
func (m *Mirror) Hooks() int { return len(m.hooks) }

func (m *Mirror) entry(
	byID map[string]donburi.Entity,
	id string,
	tag donburi.IComponentType,
	comp donburi.IComponentType,
	track Tracker,
) (*donburi.Entry, bool) {
	if e, ok := byID[id]; ok && m.world.Valid(e) {
		return m.world.Entry(e), true
	}

	e := m.world.Create(tag, comp)
	if err := track(m.world, &e); err != nil {
		m.log.WithError(err).WithField("id", id).Warn("failed to set up network sync")
		m.world.Remove(e)
		return nil, false
	}
	byID[id] = e
	return m.world.Entry(e), true
}

func (m *Mirror) prune(byID map[string]donburi.Entity, seen map[string]struct{}) {
	for id, e := range byID {
		if _, ok := seen[id]; ok {
			continue
		}
		if m.world.Valid(e) {
			m.world.Remove(e)
		}
		delete(byID, id)
	}
}

func (m *Mirror) createWorld(w sim.World) {
	e := m.world.Create(tags.World, netcomponents.NetWorld)
	data := &netcomponents.NetWorldData{Radius: w.Radius}
	for _, h := range w.Holes {
		data.Holes = append(data.Holes, netcomponents.NetHole{X: h.Loc.X, Y: h.Loc.Y, Radius: h.Radius, Color: h.Color})
	}
	netcomponents.NetWorld.Set(m.world.Entry(e), data)

	if err := m.track.World(m.world, &e); err != nil {
		m.log.WithError(err).Warn("failed to set up world sync")
	}
	m.worldEnt = &e
}
