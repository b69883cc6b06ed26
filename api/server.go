// Package api exposes a running session for watching: a JSON status
// endpoint, a websocket frame stream, stored scores, and prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/gridsnake/engine/config"
	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

// Server watches one session at a time. It implements worker.FrameSink, so
// it plugs straight into a runner's sink list.
type Server struct {
	hs    *http.Server
	store store.Store

	upgrader websocket.Upgrader

	mu       sync.RWMutex
	latest   *rules.Snapshot
	watchers map[chan *rules.Snapshot]struct{}
}

// New creates a server listening on addr. st may be nil; /scores then
// returns 404.
func New(addr string, st store.Store) *Server {
	s := &Server{
		store:    st,
		watchers: map[chan *rules.Snapshot]struct{}{},
		upgrader: websocket.Upgrader{
			// Watching is read-only, cross-origin pages may embed it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	router := httprouter.New()
	router.GET("/status", s.status)
	router.GET("/scores", s.scores)
	router.GET("/socket", s.socket)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.AllowAll().Handler(router),
	}
	return s
}

// Frame implements the runner's frame sink. The latest snapshot is retained
// for /status; watchers get it best-effort, dropping frames when behind.
func (s *Server) Frame(snap *rules.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	for ch := range s.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()
}

// WaitForExit runs the listener until it errors or Shutdown is called.
func (s *Server) WaitForExit() {
	log.WithField("Addr", s.hs.Addr).Info("api listening")
	if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("api listener failed")
	}
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()

	if snap == nil {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

type scoresResponse struct {
	HighScores     map[rules.Mode]int `json:"highScores"`
	UnlockedLevels int                `json:"unlockedLevels"`
}

func (s *Server) scores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.store == nil {
		http.Error(w, "no store", http.StatusNotFound)
		return
	}

	resp := scoresResponse{HighScores: map[rules.Mode]int{}}
	for _, mode := range []rules.Mode{rules.ModeEndless, rules.ModeLevels, rules.ModeTime} {
		best, err := s.store.HighScore(r.Context(), mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.HighScores[mode] = best
	}

	unlocked, err := s.store.UnlockedLevels(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp.UnlockedLevels = unlocked
	writeJSON(w, resp)
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("socket upgrade failed")
		return
	}

	ch := make(chan *rules.Snapshot, config.SocketBurst)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	if s.latest != nil {
		ch <- s.latest
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("socket close failed")
		}
	}()

	// Discard anything the client sends; a read error is the only
	// disconnect signal we get.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(config.SocketRate, config.SocketBurst)
	for {
		select {
		case <-done:
			return
		case snap := <-ch:
			if !limiter.Allow() {
				continue
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to encode response")
	}
}
