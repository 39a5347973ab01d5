package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lmarchant/wordle-duel/internal/room"
	"github.com/lmarchant/wordle-duel/internal/store"
	"github.com/lmarchant/wordle-duel/internal/words"
)

// newTestServer wires a server whose word list holds only CRANE, so every
// game and room has a known answer.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := words.NewStore()
	_, err := cfg.SetConfig(6, []string{"CRANE"})
	require.NoError(t, err)
	return New(store.NewMemoryStore(), room.NewManager(room.NewMemoryStore(), cfg), cfg)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestConfigRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("get reports rounds and list size", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/config", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var res configRes
		decode(t, rec, &res)
		require.Equal(t, 6, res.MaxRounds)
		require.Equal(t, 1, res.WordListSize)
	})

	t.Run("post updates config", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/config", map[string]any{
			"maxRounds": 8,
			"wordList":  []string{"crane", "stone"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var res configRes
		decode(t, rec, &res)
		require.Equal(t, 8, res.MaxRounds)
		require.Equal(t, 2, res.WordListSize)
	})

	t.Run("post rejects bad words", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/config", map[string]any{
			"wordList": []string{"FOUR"},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("post rejects bad maxRounds", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/config", map[string]any{
			"maxRounds": -3,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSoloGameRoutes(t *testing.T) {
	s := newTestServer(t)

	var created gameRes
	rec := doJSON(t, s, http.MethodPost, "/api/game/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &created)
	require.NotEmpty(t, created.GameID)
	require.Equal(t, 6, created.RemainingRounds)
	require.Empty(t, created.Answer, "answer must stay hidden while playing")

	t.Run("malformed guess", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/game/"+created.GameID+"/guess", map[string]string{"guess": "xy"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/game/nope/guess", map[string]string{"guess": "CRANE"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("winning guess reveals the answer", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/game/"+created.GameID+"/guess", map[string]string{"guess": "crane"})
		require.Equal(t, http.StatusOK, rec.Code)
		var res gameRes
		decode(t, rec, &res)
		require.True(t, res.IsWon)
		require.True(t, res.IsOver)
		require.Equal(t, "CRANE", res.Answer)
		require.NotNil(t, res.GuessResult)
	})

	t.Run("guess after game over conflicts with revealed answer", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/game/"+created.GameID+"/guess", map[string]string{"guess": "STONE"})
		require.Equal(t, http.StatusConflict, rec.Code)
		var res map[string]string
		decode(t, rec, &res)
		require.Equal(t, "CRANE", res["answer"])
	})

	t.Run("get state", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/game/"+created.GameID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var res gameRes
		decode(t, rec, &res)
		require.True(t, res.IsOver)
		require.Len(t, res.Guesses, 1)
	})
}

func TestMultiplayerRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("create validates player name", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/multiplayer/room/create", map[string]string{"playerName": "   "})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/room/create", map[string]string{
			"playerName": strings.Repeat("x", 21),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("join validates room code format", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/multiplayer/room/join", map[string]string{
			"playerName": "bob", "roomCode": "ab",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("join unknown code", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/multiplayer/room/join", map[string]string{
			"playerName": "bob", "roomCode": "ZZZZZZ",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("full match flow", func(t *testing.T) {
		var created createRoomRes
		rec := doJSON(t, s, http.MethodPost, "/api/multiplayer/room/create", map[string]string{"playerName": "alice"})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &created)
		require.Len(t, created.RoomCode, 6)

		var joined joinRoomRes
		// Codes are normalized, so a lowercase code still resolves.
		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/room/join", map[string]string{
			"playerName": "bob", "roomCode": strings.ToLower(created.RoomCode),
		})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &joined)
		require.Len(t, joined.Players, 2)

		rec = doJSON(t, s, http.MethodGet, "/api/multiplayer/room/"+created.RoomID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var info roomInfoRes
		decode(t, rec, &info)
		require.Equal(t, room.RoomPlaying, info.Status)

		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/room/join", map[string]string{
			"playerName": "carol", "roomCode": created.RoomCode,
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		var guess roomGuessRes
		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/game/"+created.RoomID+"/guess", map[string]string{
			"playerId": created.PlayerID, "guess": "STONE",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &guess)
		require.True(t, guess.Success)
		require.Equal(t, 4, guess.Score)
		require.Equal(t, 4, guess.TotalScore)

		rec = doJSON(t, s, http.MethodGet, "/api/multiplayer/game/"+created.RoomID+"/state", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var st room.StateUpdate
		decode(t, rec, &st)
		require.Equal(t, 1, st.CurrentMaxRound)
		require.Nil(t, st.FinalResults)

		rec = doJSON(t, s, http.MethodDelete, "/api/multiplayer/room/"+created.RoomID+"/leave", map[string]string{
			"playerId": joined.PlayerID,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("guess format error is distinct from state errors", func(t *testing.T) {
		var created createRoomRes
		rec := doJSON(t, s, http.MethodPost, "/api/multiplayer/room/create", map[string]string{"playerName": "alice"})
		decode(t, rec, &created)

		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/game/"+created.RoomID+"/guess", map[string]string{
			"playerId": created.PlayerID, "guess": "CR4NE",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		// Well-formed guess against a waiting room is a state conflict.
		rec = doJSON(t, s, http.MethodPost, "/api/multiplayer/game/"+created.RoomID+"/guess", map[string]string{
			"playerId": created.PlayerID, "guess": "STONE",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}
