// internal/game/evaluate.go
//
// Guess evaluation and guess text validation.
// Responsibilities:
//   - Normalize guess/answer text to uppercase before comparison.
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Reject malformed guess text with ErrBadWord before it ever
//     reaches the evaluator.

package game

import (
	"errors"
	"strings"
)

// ErrBadWord rejects guess text that is not exactly WordLength ASCII letters.
// It is a format error: the caller may correct the input and retry, and no
// game state changes when it fires.
var ErrBadWord = errors.New("guess must be exactly 5 letters and contain only alphabetic characters")

// ValidateWord checks guess text format: exactly WordLength characters, all
// alphabetic, case-insensitive. Enforced upstream of Evaluate so the
// evaluator itself is total over well-formed input.
func ValidateWord(s string) error {
	if len(s) != WordLength || !isAlpha(s) {
		return ErrBadWord
	}
	return nil
}

// Normalize uppercases guess text after trimming surrounding whitespace.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Evaluate compares a guess to an answer and produces per-letter statuses
// using the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as hit.
//   - Count remaining (non-hit) answer letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that
//     letter, mark present and decrement the count; otherwise mark miss.
//
// The ordering guarantees that the number of present markings for a repeated
// letter never exceeds the answer occurrences not already consumed by a hit,
// with left-to-right scan order deciding which duplicate gets the present
// when supply is scarce. Inputs must be validated by ValidateWord first.
func Evaluate(guess, answer string) GuessResult {
	guess = Normalize(guess)
	answer = Normalize(answer)

	res := make([]LetterResult, WordLength)

	// Letter frequency for the non-hit positions (A-Z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < WordLength; i++ {
		if guess[i] == answer[i] {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusHit}
		} else {
			counts[idx(answer[i])]++
		}
	}

	// Second pass: resolve presents/misses for non-hit tiles.
	for i := 0; i < WordLength; i++ {
		if res[i].Status == StatusHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusPresent}
			counts[j]--
		} else {
			res[i] = LetterResult{Letter: string(guess[i]), Status: StatusMiss}
		}
	}

	return GuessResult{Guess: guess, Result: res}
}

// idx maps an uppercase ASCII letter byte to 0..25.
func idx(b byte) int { return int(b - 'A') }

// isAlpha reports whether s consists only of ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
