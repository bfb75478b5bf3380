package core

import (
	"fmt"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/server/sim"
	"github.com/automoto/hookshot/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Server wires the necs websocket transport to the game loop.
type Server struct {
	cfg       config.Config
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	log       *logrus.Entry
}

// NewServer creates a server simulating world with the given tuning.
func NewServer(cfg config.Config, world sim.World) *Server {
	ecsWorld := donburi.NewWorld()

	// Set up the world for esync
	srvsync.UseEsync(ecsWorld)

	state := sim.NewState(cfg, world)
	mirror := NewMirror(ecsWorld, NetworkTrackers())

	s := &Server{
		cfg:   cfg,
		world: ecsWorld,
		loop:  NewGameLoop(cfg, state, mirror, srvsync.DoSync),
		log:   logrus.WithField("component", "core"),
	}
	s.setupRouterCallbacks()
	return s
}

// Start runs the game loop and serves websocket clients on port. It blocks
// until the transport stops.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err := s.transport.Start(); err != nil {
		return fmt.Errorf("websocket transport on port %d: %w", port, err)
	}
	return nil
}

// Stop shuts the game loop down.
func (s *Server) Stop() {
	s.loop.Stop()
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	return s.loop.PlayerCount()
}

// HookCount returns the number of hooks in play.
func (s *Server) HookCount() int {
	return s.loop.HookCount()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.WithField("session", client.Id()).Info("client connected")
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		log := s.log.WithField("session", client.Id())
		if err != nil {
			log.WithError(err).Info("client disconnected")
		} else {
			log.Info("client disconnected")
		}
		s.loop.Submit(Leave{SessionID: client.Id()})
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, msg messages.GoInDirection) {
		s.loop.Submit(Press{SessionID: client.Id(), Direction: msg.Direction})
	})

	router.On(func(client *router.NetworkClient, msg messages.StopInDirection) {
		s.loop.Submit(Release{SessionID: client.Id(), Direction: msg.Direction})
	})

	router.On(func(client *router.NetworkClient, msg messages.ThrowHook) {
		s.loop.Submit(Throw{SessionID: client.Id(), X: msg.X, Y: msg.Y})
	})

	router.On(func(client *router.NetworkClient, _ messages.ReelHooks) {
		s.loop.Submit(Reel{SessionID: client.Id()})
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.WithError(err).WithField("session", client.Id()).Warn("client error")
	})
}

func (s *Server) onJoin(client Session, req messages.JoinRequest) {
	res, err := s.loop.JoinGame(client, req)
	if err != nil {
		s.log.WithError(err).Warn("join failed")
		return
	}
	if err := client.SendMessage(res); err != nil {
		s.log.WithError(err).WithField("session", client.Id()).Warn("failed to send join response")
	}
}
