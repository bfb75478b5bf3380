package core

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/server/sim"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/messages"
	"github.com/automoto/hookshot/shared/netconfig"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const maxUsernameLen = 24

type member struct {
	session  Session
	playerID string
}

// GameLoop owns the simulation. Every mutation of the state happens on the
// goroutine running Run.
type GameLoop struct {
	Inbox chan any

	cfg    config.Config
	state  *sim.State
	mirror *Mirror
	// sync pushes the mirrored entities to clients.
	sync func() error
	log  *logrus.Entry

	members map[string]*member // by session id
	outbox  chan outbound
	players atomic.Int32
	hooks   atomic.Int32

	last     time.Time
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

type outbound struct {
	to  Session
	msg any
}

func NewGameLoop(cfg config.Config, state *sim.State, mirror *Mirror, sync func() error) *GameLoop {
	return &GameLoop{
		Inbox:    make(chan any, 256),
		cfg:      cfg,
		state:    state,
		mirror:   mirror,
		sync:     sync,
		log:      logrus.WithField("component", "loop"),
		members:  make(map[string]*member),
		outbox:   make(chan outbound, 1024),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks at the configured rate until Stop. The ticker drops ticks the
// loop is too slow to take, so ticks never overlap.
func (g *GameLoop) Run() {
	defer close(g.done)
	go g.sendLoop()
	defer close(g.outbox)

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Server.TickRate))
	defer ticker.Stop()

	g.log.Infof("game loop started at %d ticks/second", g.cfg.Server.TickRate)

	for {
		select {
		case <-g.stopChan:
			g.log.Info("game loop stopped")
			return
		case cmd := <-g.Inbox:
			g.handleCommand(cmd)
		case now := <-ticker.C:
			g.tick(now)
		}
	}
}

// Stop ends Run and waits for it to return. Later calls only wait.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
	<-g.done
}

// PlayerCount is safe to call from any goroutine.
func (g *GameLoop) PlayerCount() int {
	return int(g.players.Load())
}

// HookCount is the number of hooks after the last tick. Safe to call from
// any goroutine.
func (g *GameLoop) HookCount() int {
	return int(g.hooks.Load())
}

// Submit queues a command without blocking the caller forever on a stopped
// loop.
func (g *GameLoop) Submit(cmd any) bool {
	select {
	case g.Inbox <- cmd:
		return true
	case <-g.done:
		return false
	}
}

// JoinGame queues a join and waits for the loop's answer.
func (g *GameLoop) JoinGame(s Session, req messages.JoinRequest) (any, error) {
	reply := make(chan any, 1)
	if !g.Submit(Join{Session: s, Request: req, Reply: reply}) {
		return nil, fmt.Errorf("join %s: game loop stopped", s.Id())
	}
	select {
	case res := <-reply:
		return res, nil
	case <-g.done:
		return nil, fmt.Errorf("join %s: game loop stopped", s.Id())
	}
}

// tick advances the simulation by the wall time since the previous tick. The
// first tick only records the time.
func (g *GameLoop) tick(now time.Time) {
	defer g.recoverPanic("tick")

	if g.last.IsZero() {
		g.last = now
		return
	}
	dt := float64(now.Sub(g.last)) / float64(time.Millisecond)
	g.last = now

	g.state.Step(dt)
	g.hooks.Store(int32(g.state.NumHooks()))
	g.mirror.Update(g.state)
	if err := g.sync(); err != nil {
		g.log.WithError(err).Warn("sync failed")
	}
}

func (g *GameLoop) handleCommand(cmd any) {
	defer g.recoverPanic(fmt.Sprintf("%T", cmd))

	switch c := cmd.(type) {
	case Join:
		c.Reply <- g.join(c.Session, c.Request)
	case Leave:
		g.leave(c.SessionID)
	case Press:
		g.withPlayer(c.SessionID, "press", func(id string) bool {
			dir, ok := netconfig.ParseDirection(c.Direction)
			return ok && g.state.Press(id, dir)
		})
	case Release:
		g.withPlayer(c.SessionID, "release", func(id string) bool {
			dir, ok := netconfig.ParseDirection(c.Direction)
			return ok && g.state.Release(id, dir)
		})
	case Throw:
		g.withPlayer(c.SessionID, "throw", func(id string) bool {
			_, ok := g.state.ThrowHook(id, gamemath.V(c.X, c.Y))
			return ok
		})
	case Reel:
		g.withPlayer(c.SessionID, "reel", func(id string) bool {
			return g.state.ReelHooks(id)
		})
	default:
		g.log.Warnf("unknown command %T", cmd)
	}
}

// withPlayer runs fn for the session's player. Commands from sessions that
// have not joined and commands the simulation rejects are dropped.
func (g *GameLoop) withPlayer(sessionID, what string, fn func(playerID string) bool) {
	m, ok := g.members[sessionID]
	if !ok {
		g.log.WithField("session", sessionID).Debugf("%s from unjoined session ignored", what)
		return
	}
	if !fn(m.playerID) {
		g.log.WithField("player", m.playerID).Debugf("%s ignored", what)
	}
}

func (g *GameLoop) join(s Session, req messages.JoinRequest) any {
	log := g.log.WithField("session", s.Id())

	if _, dup := g.members[s.Id()]; dup {
		return messages.JoinRejected{Reason: "already joined"}
	}
	if v := g.cfg.Server.Version; v != "" && req.Version != v {
		log.Infof("rejected client version %q", req.Version)
		return messages.JoinRejected{Reason: fmt.Sprintf("version mismatch: server requires %s", v)}
	}
	if g.state.NumPlayers() >= g.cfg.Server.MaxPlayers {
		return messages.JoinRejected{Reason: "server full"}
	}

	p := g.state.Join(cleanUsername(req.Username))
	g.members[s.Id()] = &member{session: s, playerID: p.ID}
	g.players.Store(int32(g.state.NumPlayers()))
	log.WithField("player", p.ID).Infof("%s joined", p.Username)

	g.broadcast(messages.PlayerJoinedEvent{
		PlayerID: p.ID,
		Username: p.Username,
		Color:    p.Color,
		X:        p.Loc.X,
		Y:        p.Loc.Y,
	}, s.Id())

	return messages.JoinAccepted{
		PlayerID:     p.ID,
		ServerName:   g.cfg.Server.Name,
		TickRate:     g.cfg.Server.TickRate,
		PlayerRadius: g.cfg.Player.Radius,
		HookRadius:   g.cfg.Hook.Radius,
		Image:        g.state.Image(),
	}
}

func (g *GameLoop) leave(sessionID string) {
	m, ok := g.members[sessionID]
	if !ok {
		return
	}
	delete(g.members, sessionID)
	g.state.Leave(m.playerID)
	g.mirror.Update(g.state)
	g.players.Store(int32(g.state.NumPlayers()))
	g.log.WithField("player", m.playerID).Info("player left")

	g.broadcast(messages.PlayerLeftEvent{PlayerID: m.playerID}, sessionID)
}

// broadcast queues msg for every member except the one with session id skip.
func (g *GameLoop) broadcast(msg any, skip string) {
	for id, m := range g.members {
		if id == skip {
			continue
		}
		select {
		case g.outbox <- outbound{to: m.session, msg: msg}:
		default:
			g.log.Warnf("outbox full, dropped %T for %s", msg, m.playerID)
		}
	}
}

func (g *GameLoop) sendLoop() {
	for out := range g.outbox {
		if err := out.to.SendMessage(out.msg); err != nil {
			g.log.WithError(err).WithField("session", out.to.Id()).Debugf("send %T failed", out.msg)
		}
	}
}

// recoverPanic keeps the loop alive after a panic and reports it to Sentry.
func (g *GameLoop) recoverPanic(where string) {
	if err := recover(); err != nil {
		g.log.Errorf("%s panic: %v", where, err)
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("where", where)
			scope.SetTag("tick", fmt.Sprint(g.state.Tick))
		})
		hub.Recover(err)
		// Flushed on shutdown, never on the loop goroutine.
	}
}

func cleanUsername(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "anonymous"
	}
	if utf8.RuneCountInString(name) > maxUsernameLen {
		name = string([]rune(name)[:maxUsernameLen])
	}
	return name
}
