// internal/httpserver/routes_room.go
//
// HTTP routes for two-player competitive mode.
// Exposes six endpoints under /api/multiplayer:
//   - POST   /room/create       → open a room, caller becomes host
//   - POST   /room/join         → join by room code (auto-starts the match)
//   - GET    /room/{roomID}     → room metadata
//   - POST   /game/{roomID}/guess → submit a guess for one player
//   - GET    /game/{roomID}/state → polling snapshot (+final results when done)
//   - DELETE /room/{roomID}/leave → leave (deletes still-forming rooms)
//
// The room manager serializes all mutation; handlers only decode, validate,
// call one manager operation and render the result.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/lmarchant/wordle-duel/internal/game"
	"github.com/lmarchant/wordle-duel/internal/room"
)

// mountMultiplayer registers all /api/multiplayer routes.
func (s *Server) mountMultiplayer(r chi.Router) {
	r.Route("/api/multiplayer", func(r chi.Router) {
		r.Post("/room/create", s.handleCreateRoom)
		r.Post("/room/join", s.handleJoinRoom)
		r.Get("/room/{roomID}", s.handleGetRoom)
		r.Post("/game/{roomID}/guess", s.handleRoomGuess)
		r.Get("/game/{roomID}/state", s.handleRoomState)
		r.Delete("/room/{roomID}/leave", s.handleLeaveRoom)
	})
}

// writeRoomError maps the room error taxonomy onto status codes.
func writeRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, room.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player not found in this room")
	case errors.Is(err, room.ErrRoomFull):
		writeError(w, http.StatusConflict, "room is full (maximum 2 players)")
	case errors.Is(err, room.ErrGameStarted):
		writeError(w, http.StatusConflict, "game has already started")
	case errors.Is(err, room.ErrRoomNotPlaying):
		writeError(w, http.StatusConflict, "game is not in progress")
	case errors.Is(err, room.ErrPlayerDone):
		writeError(w, http.StatusConflict, "player has already finished")
	case errors.Is(err, game.ErrBadWord):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// playerProgressView renders the joinable view of a room's players.
func playerProgressView(players []*room.Player) []room.PlayerProgress {
	return lo.Map(players, func(p *room.Player, _ int) room.PlayerProgress {
		return room.PlayerProgress{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Guesses:    p.Guesses,
			Score:      p.Score,
			HasWon:     p.HasGuessedCorrectly,
			Status:     p.Status,
			RoundsUsed: len(p.Guesses),
		}
	})
}

// -----------------------------------------------------------------------------
// /room/create

type createRoomReq struct {
	PlayerName string `json:"playerName" validate:"required,max=20"`
}

type createRoomRes struct {
	RoomID     string `json:"roomId"`
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// handleCreateRoom opens a new room; the caller becomes host.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if !s.validateBody(w, &req) {
		return
	}

	rm, host, err := s.rooms.CreateRoom(r.Context(), req.PlayerName)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createRoomRes{
		RoomID:     rm.RoomID,
		RoomCode:   rm.RoomCode,
		PlayerID:   host.PlayerID,
		PlayerName: host.PlayerName,
	})
}

// -----------------------------------------------------------------------------
// /room/join

type joinRoomReq struct {
	PlayerName string `json:"playerName" validate:"required,max=20"`
	RoomCode   string `json:"roomCode" validate:"required,len=6,alphanum"`
}

type joinRoomRes struct {
	RoomID     string                `json:"roomId"`
	RoomCode   string                `json:"roomCode"`
	PlayerID   string                `json:"playerId"`
	PlayerName string                `json:"playerName"`
	Players    []room.PlayerProgress `json:"players"`
}

// handleJoinRoom joins a waiting room by code; the second join auto-starts
// the match.
func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.RoomCode = strings.ToUpper(strings.TrimSpace(req.RoomCode))
	if !s.validateBody(w, &req) {
		return
	}

	rm, p, err := s.rooms.JoinRoom(r.Context(), req.RoomCode, req.PlayerName)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRoomRes{
		RoomID:     rm.RoomID,
		RoomCode:   rm.RoomCode,
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Players:    playerProgressView(rm.Players),
	})
}

// -----------------------------------------------------------------------------
// /room/{roomID}

// roomInfoRes is the lobby view of a room: players by name and status only.
type roomInfoRes struct {
	RoomID    string           `json:"roomId"`
	RoomCode  string           `json:"roomCode"`
	Status    room.RoomStatus  `json:"status"`
	Players   []roomInfoPlayer `json:"players"`
	MaxRounds int              `json:"maxRounds"`
}

type roomInfoPlayer struct {
	PlayerID   string            `json:"playerId"`
	PlayerName string            `json:"playerName"`
	Status     room.PlayerStatus `json:"status"`
}

// handleGetRoom returns room metadata for the lobby screen.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Room(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomInfoRes{
		RoomID:   rm.RoomID,
		RoomCode: rm.RoomCode,
		Status:   rm.Status,
		Players: lo.Map(rm.Players, func(p *room.Player, _ int) roomInfoPlayer {
			return roomInfoPlayer{PlayerID: p.PlayerID, PlayerName: p.PlayerName, Status: p.Status}
		}),
		MaxRounds: rm.MaxRounds,
	})
}

// -----------------------------------------------------------------------------
// /game/{roomID}/guess

type roomGuessReq struct {
	PlayerID string `json:"playerId" validate:"required"`
	Guess    string `json:"guess" validate:"required"`
}

type roomGuessRes struct {
	Success     bool              `json:"success"`
	GuessResult game.GuessResult  `json:"guessResult"`
	Score       int               `json:"score"`
	TotalScore  int               `json:"totalScore"`
	GameState   *room.StateUpdate `json:"gameState"`
}

// handleRoomGuess submits a guess for one player and returns the updated
// polling snapshot alongside the per-guess score.
func (s *Server) handleRoomGuess(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	var req roomGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.validateBody(w, &req) {
		return
	}
	if err := game.ValidateWord(game.Normalize(req.Guess)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.rooms.SubmitGuess(r.Context(), roomID, req.PlayerID, req.Guess)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	state, err := s.rooms.State(r.Context(), roomID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomGuessRes{
		Success:     true,
		GuessResult: out.Result,
		Score:       out.Score,
		TotalScore:  out.TotalScore,
		GameState:   state,
	})
}

// -----------------------------------------------------------------------------
// /game/{roomID}/state

// handleRoomState returns the polling snapshot for a room.
func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	state, err := s.rooms.State(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// -----------------------------------------------------------------------------
// /room/{roomID}/leave

type leaveRoomReq struct {
	PlayerID string `json:"playerId" validate:"required"`
}

// handleLeaveRoom removes a player; still-forming rooms are deleted.
func (s *Server) handleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	var req leaveRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.validateBody(w, &req) {
		return
	}
	if err := s.rooms.Leave(r.Context(), roomID, req.PlayerID); err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
