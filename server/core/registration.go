package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/browser"
	"github.com/sirupsen/logrus"
)

// Activity reports live numbers for the server browser.
type Activity interface {
	PlayerCount() int
	HookCount() int
}

// Registration lists the server with the master and keeps the listing alive
// with heartbeats.
type Registration struct {
	masterURL string
	listing   browser.Announcement
	activity  Activity
	client    *http.Client
	interval  time.Duration
	log       *logrus.Entry

	mu       sync.Mutex
	serverID string

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewRegistration(cfg config.ServerConfig, activity Activity) *Registration {
	return &Registration{
		masterURL: cfg.MasterURL,
		listing: browser.Announcement{
			Name:       cfg.Name,
			Address:    cfg.PublicAddress,
			World:      cfg.World,
			TickRate:   cfg.TickRate,
			MaxPlayers: cfg.MaxPlayers,
			Version:    cfg.Version,
			Region:     cfg.Region,
		},
		activity: activity,
		client:   &http.Client{Timeout: 5 * time.Second},
		interval: 30 * time.Second,
		log:      logrus.WithField("component", "registration"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.announce(); err != nil {
		r.log.WithError(err).Warn("initial registration failed")
	}
	r.started.Store(true)
	go r.heartbeatLoop()
}

// Stop ends the heartbeats and withdraws the listing.
func (r *Registration) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if r.started.Load() {
			<-r.done
		}
		if err := r.withdraw(); err != nil {
			r.log.WithError(err).Warn("withdraw failed")
		}
	})
}

// ServerID is the id the master assigned, "" before registration.
func (r *Registration) ServerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serverID
}

func (r *Registration) setServerID(id string) {
	r.mu.Lock()
	r.serverID = id
	r.mu.Unlock()
}

func (r *Registration) request(method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
	}
	req, err := http.NewRequest(method, r.masterURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (r *Registration) announce() error {
	a := r.listing
	a.Players = r.activity.PlayerCount()

	resp, err := r.request(http.MethodPost, "/servers", a)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("announce: unexpected status %d", resp.StatusCode)
	}
	var reg browser.Registered
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.setServerID(reg.ID)
	r.log.WithFields(logrus.Fields{"id": reg.ID, "world": a.World}).Info("listed with master")
	return nil
}

func (r *Registration) heartbeatLoop() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.heartbeat(); err != nil {
				r.log.WithError(err).Warn("heartbeat failed")
			}
		}
	}
}

func (r *Registration) heartbeat() error {
	id := r.ServerID()
	if id == "" {
		return r.announce()
	}

	resp, err := r.request(http.MethodPut, "/servers/"+id, browser.Heartbeat{
		Players: r.activity.PlayerCount(),
		Hooks:   r.activity.HookCount(),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		r.log.Info("master dropped our listing, announcing again")
		r.setServerID("")
		return r.announce()
	}
	return fmt.Errorf("heartbeat: unexpected status %d", resp.StatusCode)
}

func (r *Registration) withdraw() error {
	id := r.ServerID()
	if id == "" {
		return nil
	}
	resp, err := r.request(http.MethodDelete, "/servers/"+id, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	r.setServerID("")
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("withdraw: unexpected status %d", resp.StatusCode)
	}
	return nil
}
