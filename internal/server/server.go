// Package server wires the HTTP surface: the embedded player page, the
// websocket endpoint for browser clients, the LINE webhook, and the small
// JSON API.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/queuecast/queuecast/internal/history"
	"github.com/queuecast/queuecast/internal/hub"
	"github.com/queuecast/queuecast/internal/player"
	"github.com/queuecast/queuecast/internal/resolve"
	"github.com/queuecast/queuecast/internal/ui/assets"
)

// Deps carries everything the routes need.
type Deps struct {
	Hub   *hub.Hub
	State *player.State
	Flow  *resolve.Flow

	// History backs /api/history; nil leaves the route unregistered.
	History *history.Store

	// Line is the webhook handler; nil when the channel is not configured,
	// in which case no route is registered.
	Line http.Handler
}

// New builds the HTTP server for addr.
func New(addr string, d Deps) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/", assets.Handler())
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(d, w, r)
	})
	if d.Line != nil {
		mux.Handle("/callback", d.Line)
		log.Printf("HTTP: LINE webhook registered at /callback")
	}

	registerHistoryRoute(mux, d.History)
	registerHealthRoute(mux, d.Hub)

	return &http.Server{Addr: addr, Handler: mux}
}

func registerHistoryRoute(mux *http.ServeMux, store *history.Store) {
	if store == nil {
		return
	}
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		limit := history.DefaultWindow
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				limit = n
			}
		}
		writeJSON(w, store.Recent(limit))
	})
}

func registerHealthRoute(mux *http.ServeMux, h *hub.Hub) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":  "ok",
			"clients": h.Count(),
		})
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("HTTP: write json: %v", err)
	}
}
