// internal/httpserver/server.go
//
// HTTP server wiring for the wordle-duel backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Config endpoints: GET/POST /api/config.
//   - Single-player endpoints: POST /api/game/new, POST /api/game/{gameID}/guess,
//     GET /api/game/{gameID}.
//   - Multiplayer endpoints: mounted under /api/multiplayer (routes_room.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The error taxonomy maps onto status codes here: malformed input → 400,
//     unknown room/player/game → 404, state conflicts → 409. State-conflict
//     bodies carry enough context for a meaningful client message (the
//     revealed answer when a game is already over).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/lmarchant/wordle-duel/internal/game"
	"github.com/lmarchant/wordle-duel/internal/room"
	"github.com/lmarchant/wordle-duel/internal/store"
	"github.com/lmarchant/wordle-duel/internal/words"
)

// Server bundles router, game store, room manager and config store.
type Server struct {
	r        *chi.Mux
	games    store.Store
	rooms    *room.Manager
	cfg      *words.Store
	validate *validator.Validate
	mu       sync.Mutex // serializes single-player game mutation
}

// New constructs a Server, installs middleware, and registers routes.
func New(games store.Store, rooms *room.Manager, cfg *words.Store) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		games:    games,
		rooms:    rooms,
		cfg:      cfg,
		validate: validator.New(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-duel","endpoints":["/health","/api/config","/api/game","/api/multiplayer"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Config + single-player game
	s.r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleSetConfig)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/{gameID}/guess", s.handleGuess)
		r.Get("/game/{gameID}", s.handleGetGame)
	})

	// Multiplayer rooms
	s.mountMultiplayer(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- responses -----------------------------------

// writeJSON encodes payload with the given status code.
func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// validateBody validates a decoded request struct; on failure it writes a
// 400 with per-field messages and returns false.
func (s *Server) validateBody(w http.ResponseWriter, v any) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "invalid body, validation failed",
			"errors": lo.Map(verrs, func(item validator.FieldError, _ int) string {
				return item.Error()
			}),
		})
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid body")
	return false
}

// ------------------------------ CONFIG -------------------------------------

// configRes is returned by GET and POST /api/config. The word list itself is
// not echoed back, only its size.
type configRes struct {
	MaxRounds    int `json:"maxRounds"`
	WordListSize int `json:"wordListSize"`
}

// handleGetConfig reports the current round limit and word list size.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configRes{
		MaxRounds:    s.cfg.MaxRounds(),
		WordListSize: s.cfg.Size(),
	})
}

// setConfigReq carries partial config updates: either field may be omitted.
type setConfigReq struct {
	MaxRounds int      `json:"maxRounds"`
	WordList  []string `json:"wordList"`
}

// handleSetConfig updates maxRounds and/or the word list. In-flight games
// and rooms keep their snapshotted values.
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req setConfigReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cfg, err := s.cfg.SetConfig(req.MaxRounds, req.WordList)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, configRes{
		MaxRounds:    cfg.MaxRounds,
		WordListSize: len(cfg.Words),
	})
}

// ------------------------------ GAME ---------------------------------------

// gameRes is the single-player game view. The answer is included only once
// the game is over.
type gameRes struct {
	GameID          string             `json:"gameId"`
	GuessResult     *game.GuessResult  `json:"guessResult,omitempty"`
	Guesses         []game.GuessResult `json:"guesses"`
	IsWon           bool               `json:"isWon"`
	IsLost          bool               `json:"isLost"`
	IsOver          bool               `json:"isOver"`
	Answer          string             `json:"answer,omitempty"`
	RemainingRounds int                `json:"remainingRounds"`
}

// gameView renders a game, optionally highlighting the latest guess result.
func gameView(g *game.Game, latest *game.GuessResult) gameRes {
	res := gameRes{
		GameID:          g.ID,
		GuessResult:     latest,
		Guesses:         g.Guesses,
		IsWon:           g.Won,
		IsLost:          g.Lost(),
		IsOver:          g.Over,
		RemainingRounds: g.RemainingRounds(),
	}
	if g.Over {
		res.Answer = g.Answer
	}
	return res
}

// handleNewGame starts a single-player game with a random answer and the
// current round limit.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.NewGame(s.cfg.RandomAnswer(), s.cfg.MaxRounds())
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	writeJSON(w, http.StatusOK, gameView(g, nil))
}

// soloGuessReq is the body of POST /api/game/{gameID}/guess.
type soloGuessReq struct {
	Guess string `json:"guess" validate:"required"`
}

// handleGuess applies a guess to a single-player game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	var req soloGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.validateBody(w, &req) {
		return
	}

	g, err := s.games.Get(r.Context(), gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	s.mu.Lock()
	gr, err := g.Apply(req.Guess)
	s.mu.Unlock()

	if err != nil {
		var over *game.GameOverError
		switch {
		case errors.As(err, &over):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":  "game is already over",
				"answer": over.Answer,
			})
		case errors.Is(err, game.ErrBadWord):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "failed to save game")
		return
	}
	writeJSON(w, http.StatusOK, gameView(g, &gr))
}

// handleGetGame returns the current state of a single-player game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, gameView(g, nil))
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
