package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/automoto/hookshot/shared/browser"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

const arenaAnnouncement = `{"name":"arena eu","address":"1.2.3.4:7373","world":"arena","tickRate":60,"players":2,"maxPlayers":16,"version":"1.0","region":"eu"}`

func TestAnnounceHeartbeatBrowse(t *testing.T) {
	mux := NewMux(NewRegistry(time.Minute))

	rec := do(t, mux, http.MethodPost, "/servers", arenaAnnouncement)
	if rec.Code != http.StatusCreated {
		t.Fatalf("announce status = %d: %s", rec.Code, rec.Body)
	}
	id := decodeBody[browser.Registered](t, rec).ID
	if id == "" {
		t.Fatal("empty id")
	}

	rec = do(t, mux, http.MethodPut, "/servers/"+id, `{"players":5,"hooks":3}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("heartbeat status = %d", rec.Code)
	}

	rec = do(t, mux, http.MethodGet, "/servers?world=arena&open=1", "")
	list := decodeBody[[]browser.Listing](t, rec)
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}
	l := list[0]
	if l.ID != id || l.Players != 5 || l.Hooks != 3 || l.TickRate != 60 || l.World != "arena" {
		t.Errorf("listing = %+v", l)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}

	if rec := do(t, mux, http.MethodGet, "/servers?world=pit", ""); len(decodeBody[[]browser.Listing](t, rec)) != 0 {
		t.Error("world filter let another world through")
	}

	rec = do(t, mux, http.MethodGet, "/worlds", "")
	worlds := decodeBody[[]WorldSummary](t, rec)
	if len(worlds) != 1 || worlds[0] != (WorldSummary{World: "arena", Servers: 1, Players: 5}) {
		t.Errorf("worlds = %+v", worlds)
	}

	if rec := do(t, mux, http.MethodDelete, "/servers/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("withdraw status = %d", rec.Code)
	}
	if rec := do(t, mux, http.MethodPut, "/servers/"+id, `{"players":1}`); rec.Code != http.StatusNotFound {
		t.Errorf("heartbeat after withdraw status = %d", rec.Code)
	}
}

func TestHandlerErrors(t *testing.T) {
	mux := NewMux(NewRegistry(time.Minute))

	tests := []struct {
		name, method, target, body string
		want                       int
	}{
		{"bad json", http.MethodPost, "/servers", "{", http.StatusBadRequest},
		{"missing address", http.MethodPost, "/servers", `{"name":"x","world":"arena","tickRate":60}`, http.StatusBadRequest},
		{"missing world", http.MethodPost, "/servers", `{"name":"x","address":"a:1","tickRate":60}`, http.StatusBadRequest},
		{"missing tick rate", http.MethodPost, "/servers", `{"name":"x","address":"a:1","world":"arena"}`, http.StatusBadRequest},
		{"unknown heartbeat", http.MethodPut, "/servers/nope", `{"players":1}`, http.StatusNotFound},
		{"unknown withdraw", http.MethodDelete, "/servers/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/servers", "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, mux, tt.method, tt.target, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
