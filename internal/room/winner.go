// internal/room/winner.go
//
// Winner resolution for a finished room. Pure and idempotent: it only reads
// already-persisted player state, so repeated calls on the same finished
// room produce identical results.

package room

import (
	"sort"

	"github.com/samber/lo"
)

// Resolve computes FinalResults for a finished room.
//
// Ranking is a total ordering over the players:
//  1. guessed correctly before not,
//  2. fewer rounds used,
//  3. higher accumulated score.
//
// The top-ranked player wins unless another player ties on all three keys,
// in which case no winner is declared. The ordering is independent of the
// stored player order.
func Resolve(r *Room) FinalResults {
	summaries := lo.Map(r.Players, func(p *Player, _ int) PlayerSummary {
		rounds := p.RoundsUsed
		if rounds == 0 {
			rounds = len(p.Guesses)
		}
		return PlayerSummary{
			PlayerID:         p.PlayerID,
			PlayerName:       p.PlayerName,
			Score:            p.Score,
			GuessedCorrectly: p.HasGuessedCorrectly,
			RoundsUsed:       rounds,
		}
	})

	ranked := append([]PlayerSummary(nil), summaries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.GuessedCorrectly != b.GuessedCorrectly {
			return a.GuessedCorrectly
		}
		if a.RoundsUsed != b.RoundsUsed {
			return a.RoundsUsed < b.RoundsUsed
		}
		return a.Score > b.Score
	})

	final := FinalResults{
		Players: summaries,
		Answer:  r.Answer,
	}

	if len(ranked) == 0 {
		final.IsTie = true
		return final
	}
	if len(ranked) > 1 && rankEqual(ranked[0], ranked[1]) {
		final.IsTie = true
		return final
	}
	final.Winner = ranked[0].PlayerID
	final.WinnerName = ranked[0].PlayerName
	return final
}

// rankEqual reports whether two players tie on every ranking key.
func rankEqual(a, b PlayerSummary) bool {
	return a.GuessedCorrectly == b.GuessedCorrectly &&
		a.RoundsUsed == b.RoundsUsed &&
		a.Score == b.Score
}
