// internal/game/types.go
//
// Core type definitions for the guess-evaluation engine.
// Defines:
//   - Status: per-letter result of a guess (hit/present/miss/empty).
//   - LetterResult / GuessResult: the evaluated form of a single guess.
//   - Game: state for a single-player session.

package game

import "time"

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter contributes no further matches.
//   - "empty":   placeholder for unfilled board cells; never produced by Evaluate.
type Status string

const (
	StatusHit     Status = "hit"
	StatusPresent Status = "present"
	StatusMiss    Status = "miss"
	StatusEmpty   Status = "empty"
)

// LetterResult pairs one uppercase letter of a guess with its Status.
type LetterResult struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// GuessResult is the evaluated form of one guess: the normalized uppercase
// word plus exactly WordLength per-letter results. Immutable once produced.
type GuessResult struct {
	Guess  string         `json:"guess"`
	Result []LetterResult `json:"result"`
}

// WordLength is the fixed word size for every game mode.
const WordLength = 5

// Game holds the state of a single-player session.
type Game struct {
	ID        string        `json:"id"`
	Answer    string        `json:"-"` // uppercase; revealed only once the game is over
	MaxRounds int           `json:"maxRounds"`
	Guesses   []GuessResult `json:"guesses"`
	Won       bool          `json:"isWon"`
	Over      bool          `json:"isOver"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Lost reports whether the game ended without a winning guess.
func (g *Game) Lost() bool { return g.Over && !g.Won }

// RemainingRounds reports how many guesses the player may still submit.
func (g *Game) RemainingRounds() int { return g.MaxRounds - len(g.Guesses) }
