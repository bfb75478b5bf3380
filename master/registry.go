package main

import (
	"sort"
	"sync"
	"time"

	"github.com/automoto/hookshot/shared/browser"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WorldSummary aggregates the listings that run one world.
type WorldSummary struct {
	World   string `json:"world"`
	Servers int    `json:"servers"`
	Players int    `json:"players"`
}

// Registry keeps the hookshot servers that heartbeat within the TTL, in the
// order they announced themselves.
type Registry struct {
	mu       sync.RWMutex
	listings *orderedmap.OrderedMap[string, *browser.Listing]
	ttl      time.Duration
	now      func() time.Time
	log      *logrus.Entry

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		listings: orderedmap.NewOrderedMap[string, *browser.Listing](),
		ttl:      ttl,
		now:      time.Now,
		log:      logrus.WithField("component", "master"),
		stopCh:   make(chan struct{}),
	}
}

// Start sweeps expired listings every interval until Stop.
func (r *Registry) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.expire()
			}
		}
	}()
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Announce lists a server and returns its id.
func (r *Registry) Announce(a browser.Announcement) string {
	a.Players = clampPlayers(a.Players, a.MaxPlayers)
	l := &browser.Listing{
		ID:           uuid.NewString(),
		Announcement: a,
		LastSeen:     r.now(),
	}

	r.mu.Lock()
	r.listings.Set(l.ID, l)
	r.mu.Unlock()
	return l.ID
}

// Touch applies a heartbeat. Unknown or expired ids report false, telling
// the server to announce again.
func (r *Registry) Touch(id string, hb browser.Heartbeat) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings.Get(id)
	if !ok {
		return false
	}
	l.LastSeen = r.now()
	l.Players = clampPlayers(hb.Players, l.MaxPlayers)
	l.Hooks = max(hb.Hooks, 0)
	return true
}

// Remove drops a listing for a server shutting down.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listings.Delete(id)
}

// Browse returns copies of the listings matching q.
func (r *Registry) Browse(q browser.Query) []browser.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]browser.Listing, 0, r.listings.Len())
	for el := r.listings.Front(); el != nil; el = el.Next() {
		if q.Match(*el.Value) {
			out = append(out, *el.Value)
		}
	}
	return out
}

// Worlds summarizes the listed servers per world, sorted by world name.
func (r *Registry) Worlds() []WorldSummary {
	r.mu.RLock()
	byWorld := make(map[string]*WorldSummary)
	for el := r.listings.Front(); el != nil; el = el.Next() {
		sum, ok := byWorld[el.Value.World]
		if !ok {
			sum = &WorldSummary{World: el.Value.World}
			byWorld[el.Value.World] = sum
		}
		sum.Servers++
		sum.Players += el.Value.Players
	}
	r.mu.RUnlock()

	out := make([]WorldSummary, 0, len(byWorld))
	for _, sum := range byWorld {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].World < out[j].World })
	return out
}

// expire drops listings not seen within the TTL and returns how many went.
func (r *Registry) expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for _, id := range r.listings.Keys() {
		l, _ := r.listings.Get(id)
		if idle := now.Sub(l.LastSeen); idle >= r.ttl {
			r.log.WithFields(logrus.Fields{"id": id, "world": l.World}).
				Infof("expired %q after %s without heartbeat", l.Name, idle.Round(time.Second))
			r.listings.Delete(id)
			n++
		}
	}
	return n
}

func clampPlayers(players, maxPlayers int) int {
	if players < 0 {
		return 0
	}
	if maxPlayers > 0 && players > maxPlayers {
		return maxPlayers
	}
	return players
}
