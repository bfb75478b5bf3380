// Package sim is the authoritative simulation: player walk and boost input,
// the hook lifecycle and the fixed-step tick. It does no I/O; the caller owns
// the State and must not share it across goroutines.
package sim

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/netconfig"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/scylladb/go-set/strset"
)

// Player is the publicly broadcast part of a connected player.
type Player struct {
	ID       string
	Loc      gamemath.Vec2
	Vel      gamemath.Vec2
	Username string
	Color    string
}

// PlayerInfo is server-private per-player state. Clients only ever see what
// it produces (velocity and position).
type PlayerInfo struct {
	Boost Boost
	Walk  Walk
	Hooks HookLinks
}

// HookLinks records which hooks a player owns and which are attached to it.
type HookLinks struct {
	Owned    *strset.Set
	Attached *strset.Set
	// FollowHook is the hook currently reeling this player, "" when none.
	FollowHook string
	// ReelCooldown is the time left in ms until the player may reel again.
	// Zero means no cooldown.
	ReelCooldown float64
}

// Hook is a thrown grappling hook.
type Hook struct {
	ID   string
	From string // owner, never empty
	To   string // attached player, "" while unattached
	Loc  gamemath.Vec2
	// Vel is nil exactly when the hook is attached and tracks its target
	// instead of moving on its own.
	Vel         *gamemath.Vec2
	IsResetting bool
	// WaitTillExit holds players this hook ignores until they stop overlapping
	// it.
	WaitTillExit *strset.Set
}

// State reports the hook's lifecycle state.
func (h *Hook) State() netconfig.HookState {
	switch {
	case h.IsResetting:
		return netconfig.HookResetting
	case h.To != "" && h.Vel == nil:
		return netconfig.HookTracking
	case h.To != "":
		return netconfig.HookReeling
	}
	return netconfig.HookFlying
}

// State is the whole simulated world. Players and hooks are arenas keyed by
// id that iterate in insertion order, which keeps every tick deterministic.
type State struct {
	cfg   config.Config
	World World

	players *orderedmap.OrderedMap[string, *Player]
	infos   map[string]*PlayerInfo
	hooks   *orderedmap.OrderedMap[string, *Hook]

	index *playerIndex
	rng   *rand.Rand
	newID func() string

	// Tick counts completed steps.
	Tick int
}

// Option customizes a new State.
type Option func(*State)

// WithRand sets the source used for spawn locations and colors.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// WithIDs sets the generator for player and hook ids.
func WithIDs(gen func() string) Option {
	return func(s *State) { s.newID = gen }
}

// NewState creates an empty world.
func NewState(cfg config.Config, world World, opts ...Option) *State {
	s := &State{
		cfg:     cfg,
		World:   world,
		players: orderedmap.NewOrderedMap[string, *Player](),
		infos:   make(map[string]*PlayerInfo),
		hooks:   orderedmap.NewOrderedMap[string, *Hook](),
		index:   newPlayerIndex(cfg.Player.Radius, cfg.Hook.Radius),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the tuning the state was created with.
func (s *State) Config() config.Config { return s.cfg }

// Player looks up a player by id.
func (s *State) Player(id string) (*Player, bool) {
	return s.players.Get(id)
}

// Info looks up the private state of a player.
func (s *State) Info(id string) (*PlayerInfo, bool) {
	info, ok := s.infos[id]
	return info, ok
}

// Hook looks up a hook by id.
func (s *State) Hook(id string) (*Hook, bool) {
	return s.hooks.Get(id)
}

func (s *State) NumPlayers() int { return s.players.Len() }

func (s *State) NumHooks() int { return s.hooks.Len() }

// Players returns all players in join order.
func (s *State) Players() []*Player {
	out := make([]*Player, 0, s.players.Len())
	for el := s.players.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Hooks returns all hooks in throw order.
func (s *State) Hooks() []*Hook {
	out := make([]*Hook, 0, s.hooks.Len())
	for el := s.hooks.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Join creates a player with a fresh id, a randomized spawn location and a
// random color.
func (s *State) Join(username string) *Player {
	return s.addPlayer(s.newID(), username, s.randomColor(), s.spawnLocation())
}

func (s *State) addPlayer(id, username, color string, loc gamemath.Vec2) *Player {
	p := &Player{ID: id, Loc: loc, Username: username, Color: color}
	s.players.Set(id, p)
	s.infos[id] = newPlayerInfo()
	return p
}

func newPlayerInfo() *PlayerInfo {
	return &PlayerInfo{
		Hooks: HookLinks{
			Owned:    strset.New(),
			Attached: strset.New(),
		},
	}
}

// Leave removes a player. Every hook it owns is deleted and every hook
// attached to it is detached and sent back to its owner, so no hook or set
// keeps a reference to the player. Unknown ids report false.
func (s *State) Leave(id string) bool {
	info, ok := s.infos[id]
	if !ok {
		return false
	}

	for _, hid := range sortedIDs(info.Hooks.Owned) {
		if h, ok := s.hooks.Get(hid); ok {
			s.deleteHook(h)
		}
	}
	for _, hid := range sortedIDs(info.Hooks.Attached) {
		if h, ok := s.hooks.Get(hid); ok {
			s.detachHook(h, false)
			s.resetHook(h)
		}
	}
	for el := s.hooks.Front(); el != nil; el = el.Next() {
		el.Value.WaitTillExit.Remove(id)
	}

	s.players.Delete(id)
	delete(s.infos, id)
	return true
}

func (s *State) spawnLocation() gamemath.Vec2 {
	base := gamemath.V(10, 10)
	if n := len(s.World.SpawnPoints); n > 0 {
		base = s.World.SpawnPoints[s.rng.IntN(n)]
	}
	return base.Add(gamemath.V(s.rng.Float64()*20, -s.rng.Float64()*100))
}

func (s *State) randomColor() string {
	return fmt.Sprintf("#%06x", s.rng.IntN(0x1000000))
}

// sortedIDs lists a set in a stable order.
func sortedIDs(set *strset.Set) []string {
	ids := set.List()
	sort.Strings(ids)
	return ids
}
