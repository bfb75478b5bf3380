package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/automoto/hookshot/shared/browser"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "master")

const maxRequestBody = 1 << 16

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encode response")
	}
}

// readJSON decodes a bounded request body into v and answers 400 itself when
// that fails.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{"invalid json"})
		return false
	}
	return true
}

func validAnnouncement(a browser.Announcement) error {
	switch {
	case a.Name == "" || a.Address == "":
		return errors.New("name and address required")
	case a.World == "":
		return errors.New("world required")
	case a.TickRate <= 0:
		return errors.New("tick rate must be positive")
	}
	return nil
}

// NewMux routes the server browser API:
//
//	GET    /servers       listings, filtered by version, region, world, open
//	POST   /servers       announce a server
//	PUT    /servers/{id}  heartbeat
//	DELETE /servers/{id}  withdraw a server
//	GET    /worlds        per-world totals
//	GET    /health
func NewMux(reg *Registry) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /servers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.Browse(browser.ParseQuery(r.URL.Query())))
	})

	mux.HandleFunc("POST /servers", func(w http.ResponseWriter, r *http.Request) {
		var a browser.Announcement
		if !readJSON(w, r, &a) {
			return
		}
		if err := validAnnouncement(a); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{err.Error()})
			return
		}
		id := reg.Announce(a)
		log.WithFields(logrus.Fields{"id": id, "world": a.World}).
			Infof("listed %q at %s", a.Name, a.Address)
		writeJSON(w, http.StatusCreated, browser.Registered{ID: id})
	})

	mux.HandleFunc("PUT /servers/{id}", func(w http.ResponseWriter, r *http.Request) {
		var hb browser.Heartbeat
		if !readJSON(w, r, &hb) {
			return
		}
		if !reg.Touch(r.PathValue("id"), hb) {
			writeJSON(w, http.StatusNotFound, apiError{"unknown server"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("DELETE /servers/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !reg.Remove(r.PathValue("id")) {
			writeJSON(w, http.StatusNotFound, apiError{"unknown server"})
			return
		}
		log.WithField("id", r.PathValue("id")).Info("server withdrew")
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /worlds", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, reg.Worlds())
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return withCORS(mux)
}

// withCORS lets browser clients read listings from other origins.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}
