// internal/room/types.go
//
// Data model for two-player competitive rooms.
// Defines:
//   - PlayerStatus / RoomStatus enums.
//   - Player: one participant's guesses, score and completion state.
//   - Room: the match context (answer, round limit, player pair).
//   - FinalResults / PlayerSummary: the winner-resolution snapshot.
//   - PlayerProgress / StateUpdate: the polling view of a room.

package room

import (
	"time"

	"github.com/samber/lo"

	"github.com/lmarchant/wordle-duel/internal/game"
)

// PlayerStatus tracks a participant through one match.
// waiting → playing → won (correct guess) or finished (rounds exhausted).
// won and finished are both terminal with respect to further guesses.
type PlayerStatus string

const (
	PlayerWaiting  PlayerStatus = "waiting"
	PlayerPlaying  PlayerStatus = "playing"
	PlayerWon      PlayerStatus = "won"
	PlayerFinished PlayerStatus = "finished"
)

// Done reports whether the status is terminal (won or finished).
func (s PlayerStatus) Done() bool { return s == PlayerWon || s == PlayerFinished }

// RoomStatus tracks a room through its lifecycle.
// waiting → playing (second player joins) → finished (all players done).
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomPlaying  RoomStatus = "playing"
	RoomFinished RoomStatus = "finished"
)

// Player is one participant in a room. Mutated only by guess submission;
// removed only as part of room teardown.
type Player struct {
	PlayerID            string             `json:"playerId"`
	PlayerName          string             `json:"playerName"`
	Guesses             []game.GuessResult `json:"guesses"`
	Score               int                `json:"score"`
	Status              PlayerStatus       `json:"status"`
	HasGuessedCorrectly bool               `json:"hasGuessedCorrectly"`
	CompletedAt         *time.Time         `json:"completedAt,omitempty"`
	RoundsUsed          int                `json:"roundsUsed,omitempty"`
}

// MaxPlayers is the fixed room capacity.
const MaxPlayers = 2

// Room is a two-player match: a hidden answer, a shared round limit, and
// both players' independent guess histories. The room exclusively owns its
// player list.
type Room struct {
	RoomID       string     `json:"roomId"`
	RoomCode     string     `json:"roomCode"`
	HostPlayerID string     `json:"hostPlayerId"`
	Players      []*Player  `json:"players"`
	Status       RoomStatus `json:"status"`
	Answer       string     `json:"-"`
	MaxRounds    int        `json:"maxRounds"`
	MaxPlayers   int        `json:"maxPlayers"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
}

// Player looks up a participant by ID.
func (r *Room) Player(playerID string) (*Player, bool) {
	return lo.Find(r.Players, func(p *Player) bool { return p.PlayerID == playerID })
}

// PlayerSummary is the per-player line of FinalResults.
type PlayerSummary struct {
	PlayerID         string `json:"playerId"`
	PlayerName       string `json:"playerName"`
	Score            int    `json:"score"`
	GuessedCorrectly bool   `json:"guessedCorrectly"`
	RoundsUsed       int    `json:"roundsUsed"`
}

// FinalResults is the derived, read-only outcome of a finished room:
// winner (if any), tie flag, per-player summaries, and the revealed answer.
// Computed on demand; never stored.
type FinalResults struct {
	Winner     string          `json:"winner,omitempty"`
	WinnerName string          `json:"winnerName,omitempty"`
	IsTie      bool            `json:"isTie"`
	Players    []PlayerSummary `json:"players"`
	Answer     string          `json:"answer"`
}

// PlayerProgress is the polling view of one participant.
type PlayerProgress struct {
	PlayerID   string             `json:"playerId"`
	PlayerName string             `json:"playerName"`
	Guesses    []game.GuessResult `json:"guesses"`
	Score      int                `json:"score"`
	HasWon     bool               `json:"hasWon"`
	Status     PlayerStatus       `json:"status"`
	RoundsUsed int                `json:"roundsUsed"`
}

// StateUpdate is the polling snapshot of a room; FinalResults is attached
// once the room is finished.
type StateUpdate struct {
	RoomID          string           `json:"roomId"`
	RoomCode        string           `json:"roomCode"`
	Players         []PlayerProgress `json:"players"`
	CurrentMaxRound int              `json:"currentMaxRound"`
	MaxRounds       int              `json:"maxRounds"`
	Status          RoomStatus       `json:"status"`
	Winner          string           `json:"winner,omitempty"`
	FinalResults    *FinalResults    `json:"finalResults,omitempty"`
}
