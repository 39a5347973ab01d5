// internal/game/engine.go
//
// Single-player game engine.
// Responsibilities:
//   - Create new games with an answer and round limit snapshotted at
//     creation time.
//   - Validate and apply guesses, returning the evaluated result.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Answers and the round limit come from the words package; the engine
//     never reads configuration after creation.
//   - Guesses after completion fail with *GameOverError, which carries the
//     revealed answer so the caller can present it.

package game

import (
	"time"

	"github.com/google/uuid"
)

// GameOverError rejects a guess against a game that has already finished.
// Answer carries the revealed solution for the caller's error message.
type GameOverError struct {
	Answer string
}

func (e *GameOverError) Error() string { return "game is already over" }

// NewGame constructs a game around an already-chosen answer.
func NewGame(answer string, maxRounds int) *Game {
	return &Game{
		ID:        uuid.NewString(),
		Answer:    Normalize(answer),
		MaxRounds: maxRounds,
		Guesses:   []GuessResult{},
		CreatedAt: time.Now().UTC(),
	}
}

// Apply validates and scores a guess, mutating the game state.
//
// Failure modes:
//   - *GameOverError if the game already finished (no state change).
//   - ErrBadWord if the text is not a well-formed word (no state change).
//
// State transitions:
//   - Guess matches the answer (case-insensitive) → Over, Won.
//   - Guess count reaches MaxRounds without a match → Over (loss).
func (g *Game) Apply(text string) (GuessResult, error) {
	if g.Over {
		return GuessResult{}, &GameOverError{Answer: g.Answer}
	}
	text = Normalize(text)
	if err := ValidateWord(text); err != nil {
		return GuessResult{}, err
	}

	gr := Evaluate(text, g.Answer)
	g.Guesses = append(g.Guesses, gr)

	if gr.Guess == g.Answer {
		g.Over, g.Won = true, true
	} else if len(g.Guesses) >= g.MaxRounds {
		g.Over = true
	}
	return gr, nil
}
