// internal/game/score.go

package game

// Per-letter score weights.
const (
	pointsHit     = 2
	pointsPresent = 1
)

// Score sums the per-letter weights of an evaluated guess:
// hit = 2, present = 1, miss = 0.
func Score(gr GuessResult) int {
	score := 0
	for _, lr := range gr.Result {
		switch lr.Status {
		case StatusHit:
			score += pointsHit
		case StatusPresent:
			score += pointsPresent
		}
	}
	return score
}
