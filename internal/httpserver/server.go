// internal/httpserver/server.go
//
// HTTP server wiring for the Lexique backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, CORS, timeouts, JSON).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Lexicon endpoints: /words, /words/featured, /words/{id}, /categories, /audio/{term}.
//   - Favorites endpoints (device scoped): /favorites, /favorites/{id}/toggle, /favorites/ws.
//   - Game endpoints: /games/{kind}/... (see routes_games.go).
//   - Background sweep closing idle game sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the device cookie works).
//   - Every request carries a device id from a signed token; one is minted on first contact.
//   - The websocket route is mounted outside the timeout group.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lexique/internal/audio"
	"github.com/robalobadob/lexique/internal/daily"
	"github.com/robalobadob/lexique/internal/favorites"
	"github.com/robalobadob/lexique/internal/game"
	"github.com/robalobadob/lexique/internal/lexicon"
	"github.com/robalobadob/lexique/internal/store"
)

const sweepEvery = 10 * time.Minute

// Options configures a Server. Zero values fall back to the documented defaults.
type Options struct {
	Lexicon   *lexicon.Lexicon
	Sessions  store.Store
	Favorites *favorites.Registry
	Audio     audio.Resolver

	DeviceSecret    string
	DeviceTokenDays int // default 365
	ClientOrigin    string
	RequestTimeout  time.Duration // default 10s

	Frame      time.Duration // sprint frame period, default game.DefaultFrame
	SessionTTL time.Duration // idle sessions older than this are swept; 0 disables the sweep

	DailySalt  string
	DailyCount int // default daily.DefaultCount

	Rand      game.Rand      // default game.CryptoRand
	Scheduler game.Scheduler // default game.Clock
	Now       func() time.Time
}

// Server bundles router, session registry and collaborators.
type Server struct {
	r        *chi.Mux
	opts     Options
	lex      *lexicon.Lexicon
	sessions store.Store
	favs     *favorites.Registry
	upgrader websocket.Upgrader

	http     *http.Server
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.Default()
	}
	if opts.Sessions == nil {
		opts.Sessions = store.NewMemoryStore()
	}
	if opts.Favorites == nil {
		opts.Favorites = favorites.NewRegistry(func(string) favorites.KV { return favorites.NewMemoryKV() })
	}
	if opts.DeviceSecret == "" {
		opts.DeviceSecret = "dev_device_secret"
	}
	if opts.DeviceTokenDays <= 0 {
		opts.DeviceTokenDays = 365
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.Frame <= 0 {
		opts.Frame = game.DefaultFrame
	}
	if opts.DailyCount <= 0 {
		opts.DailyCount = daily.DefaultCount
	}
	if opts.Rand == nil {
		opts.Rand = game.CryptoRand
	}
	if opts.Scheduler == nil {
		opts.Scheduler = game.Clock{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		r:        chi.NewRouter(),
		opts:     opts,
		lex:      opts.Lexicon,
		sessions: opts.Sessions,
		favs:     opts.Favorites,
		stop:     make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(corsFor(opts.ClientOrigin))  // credentials-friendly CORS
	s.r.Use(s.withDevice)                // device id in context, minted when missing

	// Long-lived: no timeout, no JSON default.
	s.r.Get("/favorites/ws", s.handleFavoritesWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout))

		// Binary responses keep their own content type.
		r.Get("/audio/{term}", s.handleAudio)

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType)

			// --- diagnostics ---
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"service":"lexique","endpoints":["/health","/words","/favorites","/games/{kind}"]}`))
			})
			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"ok":true}`))
			})
			r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
				total, playable := s.lex.Stats()
				_ = json.NewEncoder(w).Encode(map[string]int{
					"total": total, "playable": playable, "sessions": s.sessions.Len(),
				})
			})

			s.mountWords(r)
			s.mountFeatured(r)
			s.mountFavorites(r)
			s.mountGames(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	if opts.SessionTTL > 0 {
		s.wg.Add(1)
		go s.sweepLoop(sweepEvery, opts.SessionTTL)
	}
	return s
}

// Start begins serving HTTP on addr. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then closes the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	s.Close()
	return err
}

// Close stops the sweep loop and closes every live session. Safe to call twice.
func (s *Server) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	n := s.sessions.CloseAll()
	log.Debug().Int("sessions", n).Msg("server closed")
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// sweepLoop closes sessions idle for longer than ttl.
func (s *Server) sweepLoop(every, ttl time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(ttl); n > 0 {
				log.Info().Int("closed", n).Int("live", s.sessions.Len()).Msg("swept idle game sessions")
			}
		}
	}
}

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
