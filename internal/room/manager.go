// internal/room/manager.go
//
// Room lifecycle orchestration: create, join, guess submission, leave, and
// age-based expiry. The Manager is the only writer of room state.
//
// Concurrency model: every operation runs to completion under a single
// mutex before the next one is admitted, so a guess submission is atomic
// with respect to status transitions. The expiry sweep takes the same lock
// as regular operations, so it can never race a join or leave on a room
// mid-sweep. Rooms are independent; the shared mutex simply serializes the
// few microseconds of in-memory mutation per request.

package room

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/lmarchant/wordle-duel/internal/game"
	"github.com/lmarchant/wordle-duel/internal/words"
)

// Manager orchestrates room and player state. Construct once at process
// start with NewManager and share between the HTTP layer and the cleanup
// task.
type Manager struct {
	mu    sync.Mutex
	store Store
	cfg   *words.Store
}

// NewManager wires a Manager to its room store and word/config store.
func NewManager(store Store, cfg *words.Store) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// GuessOutcome is the result of one accepted guess submission.
type GuessOutcome struct {
	Result     game.GuessResult
	Score      int // points earned by this guess
	TotalScore int // player's accumulated score
	Player     *Player
	Room       *Room
}

// CreateRoom opens a new room with one waiting player, who becomes host.
// The answer is drawn uniformly at random from the configured word list and
// the round limit is snapshotted from the current config.
func (m *Manager) CreateRoom(ctx context.Context, playerName string) (*Room, *Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, err := m.store.NewCode(ctx)
	if err != nil {
		return nil, nil, err
	}

	host := newPlayer(playerName)
	r := &Room{
		RoomID:       uuid.NewString(),
		RoomCode:     code,
		HostPlayerID: host.PlayerID,
		Players:      []*Player{host},
		Status:       RoomWaiting,
		Answer:       m.cfg.RandomAnswer(),
		MaxRounds:    m.cfg.MaxRounds(),
		MaxPlayers:   MaxPlayers,
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.store.Save(ctx, r); err != nil {
		return nil, nil, err
	}
	return r, host, nil
}

// JoinRoom appends a second player to a waiting room, resolved by code.
// Joining the second slot is itself the start signal: the room transitions
// to playing, startedAt is stamped, and both players start playing. There
// is no separate "ready" step.
func (m *Manager) JoinRoom(ctx context.Context, roomCode, playerName string) (*Room, *Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.store.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, nil, err
	}
	if len(r.Players) >= r.MaxPlayers {
		return nil, nil, ErrRoomFull
	}
	if r.Status != RoomWaiting {
		return nil, nil, ErrGameStarted
	}

	p := newPlayer(playerName)
	r.Players = append(r.Players, p)

	if len(r.Players) == r.MaxPlayers {
		now := time.Now().UTC()
		r.Status = RoomPlaying
		r.StartedAt = &now
		for _, pl := range r.Players {
			pl.Status = PlayerPlaying
		}
	}
	if err := m.store.Save(ctx, r); err != nil {
		return nil, nil, err
	}
	return r, p, nil
}

// SubmitGuess validates, evaluates and scores one guess for a player.
//
// Failure modes (none mutates state): ErrRoomNotFound, ErrRoomNotPlaying,
// ErrPlayerNotFound, ErrPlayerDone, game.ErrBadWord.
//
// On a correct guess the player transitions to won; on exhausting the round
// limit without a match, to finished. Either way completedAt and roundsUsed
// are stamped. When the last active player completes, the room transitions
// to finished; there is no other path to room completion.
func (m *Manager) SubmitGuess(ctx context.Context, roomID, playerID, text string) (*GuessOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Status != RoomPlaying {
		return nil, ErrRoomNotPlaying
	}
	p, ok := r.Player(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if p.Status.Done() {
		return nil, ErrPlayerDone
	}
	text = game.Normalize(text)
	if err := game.ValidateWord(text); err != nil {
		return nil, err
	}

	gr := game.Evaluate(text, r.Answer)
	p.Guesses = append(p.Guesses, gr)

	guessScore := game.Score(gr)
	p.Score += guessScore

	if gr.Guess == r.Answer {
		p.HasGuessedCorrectly = true
		p.complete(PlayerWon)
	} else if len(p.Guesses) >= r.MaxRounds {
		p.complete(PlayerFinished)
	}

	if lo.EveryBy(r.Players, func(pl *Player) bool { return pl.Status.Done() }) {
		now := time.Now().UTC()
		r.Status = RoomFinished
		r.FinishedAt = &now
	}

	if err := m.store.Save(ctx, r); err != nil {
		return nil, err
	}
	return &GuessOutcome{
		Result:     gr,
		Score:      guessScore,
		TotalScore: p.Score,
		Player:     p,
		Room:       r,
	}, nil
}

// Leave removes a player from a room. A still-forming room cannot survive a
// departure: when the room becomes empty, or was still waiting, it is
// deleted immediately along with its code-index entry. A room already
// playing or finished survives a single departure with the remaining
// player's state left as-is.
func (m *Manager) Leave(ctx context.Context, roomID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.store.Get(ctx, roomID)
	if err != nil {
		return err
	}
	r.Players = lo.Reject(r.Players, func(p *Player, _ int) bool { return p.PlayerID == playerID })

	if len(r.Players) == 0 || r.Status == RoomWaiting {
		return m.store.Delete(ctx, roomID)
	}
	return m.store.Save(ctx, r)
}

// CleanupOld deletes every room whose createdAt is older than maxAge,
// regardless of status, and returns the number removed. Runs under the same
// lock as regular operations.
func (m *Manager) CleanupOld(ctx context.Context, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.All(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	cleaned := 0
	for _, r := range all {
		if r.CreatedAt.Before(cutoff) {
			if err := m.store.Delete(ctx, r.RoomID); err != nil {
				return cleaned, err
			}
			cleaned++
		}
	}
	return cleaned, nil
}

// Room returns a room by ID.
func (m *Manager) Room(ctx context.Context, roomID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Get(ctx, roomID)
}

// RoomByCode returns a room through the code index.
func (m *Manager) RoomByCode(ctx context.Context, code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.GetByCode(ctx, code)
}

// State builds the polling snapshot for a room, attaching FinalResults once
// the room is finished.
func (m *Manager) State(ctx context.Context, roomID string) (*StateUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	players := lo.Map(r.Players, func(p *Player, _ int) PlayerProgress {
		return PlayerProgress{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Guesses:    p.Guesses,
			Score:      p.Score,
			HasWon:     p.HasGuessedCorrectly,
			Status:     p.Status,
			RoundsUsed: len(p.Guesses),
		}
	})

	currentMaxRound := 0
	for _, p := range r.Players {
		if len(p.Guesses) > currentMaxRound {
			currentMaxRound = len(p.Guesses)
		}
	}

	st := &StateUpdate{
		RoomID:          r.RoomID,
		RoomCode:        r.RoomCode,
		Players:         players,
		CurrentMaxRound: currentMaxRound,
		MaxRounds:       r.MaxRounds,
		Status:          r.Status,
	}
	if r.Status == RoomFinished {
		final := Resolve(r)
		st.Winner = final.Winner
		st.FinalResults = &final
	}
	return st, nil
}

// newPlayer constructs a waiting player with a fresh ID.
func newPlayer(name string) *Player {
	return &Player{
		PlayerID:   uuid.NewString(),
		PlayerName: name,
		Guesses:    []game.GuessResult{},
		Status:     PlayerWaiting,
	}
}

// complete stamps the terminal fields for a player reaching status s.
func (p *Player) complete(s PlayerStatus) {
	now := time.Now().UTC()
	p.Status = s
	p.CompletedAt = &now
	p.RoundsUsed = len(p.Guesses)
}
