// Package browser holds the JSON documents exchanged between game servers
// and the master server browser.
package browser

import (
	"net/url"
	"strconv"
	"time"
)

// Announcement is what a game server sends when it comes online.
type Announcement struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	World      string `json:"world"`
	TickRate   int    `json:"tickRate"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

// Registered answers an Announcement with the id to heartbeat with.
type Registered struct {
	ID string `json:"id"`
}

// Heartbeat keeps a listing alive and refreshes its live fields.
type Heartbeat struct {
	Players int `json:"players"`
	// Hooks is the number of hooks in flight, shown as a rough activity
	// indicator.
	Hooks int `json:"hooks"`
}

// Listing is one game server as shown to clients.
type Listing struct {
	ID string `json:"id"`
	Announcement
	Hooks    int       `json:"hooks"`
	LastSeen time.Time `json:"lastSeen"`
}

// Open reports whether the server has a free slot.
func (l Listing) Open() bool {
	return l.MaxPlayers <= 0 || l.Players < l.MaxPlayers
}

// Query narrows a listing. Zero fields match everything.
type Query struct {
	Version  string
	Region   string
	World    string
	OpenOnly bool
}

// ParseQuery reads a Query from URL parameters: version, region, world and
// open=1.
func ParseQuery(v url.Values) Query {
	open, _ := strconv.ParseBool(v.Get("open"))
	return Query{
		Version:  v.Get("version"),
		Region:   v.Get("region"),
		World:    v.Get("world"),
		OpenOnly: open,
	}
}

// Match reports whether l passes every set field of q.
func (q Query) Match(l Listing) bool {
	switch {
	case q.Version != "" && q.Version != l.Version:
		return false
	case q.Region != "" && q.Region != l.Region:
		return false
	case q.World != "" && q.World != l.World:
		return false
	case q.OpenOnly && !l.Open():
		return false
	}
	return true
}

// Values encodes q as URL parameters, the inverse of ParseQuery.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Version != "" {
		v.Set("version", q.Version)
	}
	if q.Region != "" {
		v.Set("region", q.Region)
	}
	if q.World != "" {
		v.Set("world", q.World)
	}
	if q.OpenOnly {
		v.Set("open", "1")
	}
	return v
}
