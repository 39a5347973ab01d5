// internal/words/words.go
//
// Word list and game configuration store.
//
// Responsibilities:
//   - Load the answer word list from an environment-provided file or fall
//     back to the embedded default list.
//   - Hold the current round limit (maxRounds) alongside the list.
//   - Supply RandomAnswer draws and read-only config snapshots.
//   - Accept config updates (maxRounds, word list) with validation.
//
// Initialization behavior (LoadEnv):
//   1. If WORDS_FILE is set, load the list from that file.
//   2. Otherwise keep the embedded default list from `default_words.txt`.
//   3. If MAX_ROUNDS is set to a positive integer, it overrides the default.
//
// Constraints:
//   • Words must be exactly 5 alphabetic letters.
//   • Lists are normalized to uppercase.
//   • Games and rooms snapshot the answer and maxRounds at creation time;
//     later updates never affect them.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lmarchant/wordle-duel/internal/game"
)

//go:embed default_words.txt
var embeddedWords string

// DefaultMaxRounds is the round limit used when MAX_ROUNDS is unset.
const DefaultMaxRounds = 6

var (
	// ErrEmptyList rejects a configuration with no usable words.
	ErrEmptyList = errors.New("words: word list is empty")
	// ErrBadMaxRounds rejects a non-positive round limit.
	ErrBadMaxRounds = errors.New("words: maxRounds must be a positive number")
)

// Config is a read-only snapshot of the current game configuration.
type Config struct {
	MaxRounds int
	Words     []string
}

// Store owns the mutable word list + round limit. Constructed once at
// process start and injected into whatever needs configuration.
type Store struct {
	mu        sync.RWMutex
	maxRounds int
	words     []string
}

// NewStore constructs a Store seeded with the embedded default list.
func NewStore() *Store {
	return &Store{
		maxRounds: DefaultMaxRounds,
		words:     normalizeLines(embeddedWords),
	}
}

// LoadEnv applies WORDS_FILE and MAX_ROUNDS overrides.
// Returns an error if the resulting list ends up empty.
func (s *Store) LoadEnv() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path := os.Getenv("WORDS_FILE"); path != "" {
		list, err := readWordFile(path)
		if err != nil {
			return err
		}
		s.words = list
	}
	if v := os.Getenv("MAX_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return ErrBadMaxRounds
		}
		s.maxRounds = n
	}
	if len(s.words) == 0 {
		return ErrEmptyList
	}
	return nil
}

// Config returns a snapshot of the current configuration.
// The returned slice is a copy; callers may not mutate store state through it.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Config{
		MaxRounds: s.maxRounds,
		Words:     append([]string(nil), s.words...),
	}
}

// MaxRounds returns the current round limit.
func (s *Store) MaxRounds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxRounds
}

// Size returns the current word list length.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// SetConfig updates the round limit and/or word list. A nil list or a zero
// maxRounds leaves the respective value unchanged. Words are validated and
// normalized to uppercase; duplicates are kept as independent entries.
func (s *Store) SetConfig(maxRounds int, list []string) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxRounds != 0 && maxRounds < 1 {
		return Config{}, ErrBadMaxRounds
	}
	var normalized []string
	if list != nil {
		if len(list) == 0 {
			return Config{}, ErrEmptyList
		}
		normalized = make([]string, 0, len(list))
		for _, w := range list {
			w = game.Normalize(w)
			if err := game.ValidateWord(w); err != nil {
				return Config{}, err
			}
			normalized = append(normalized, w)
		}
	}

	if maxRounds != 0 {
		s.maxRounds = maxRounds
	}
	if normalized != nil {
		s.words = normalized
	}
	return Config{
		MaxRounds: s.maxRounds,
		Words:     append([]string(nil), s.words...),
	}, nil
}

// RandomAnswer returns a cryptographically random word from the list.
// Every entry is an independent draw, duplicates included.
func (s *Store) RandomAnswer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return "CRANE"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(s.words))))
	return s.words[nBig.Int64()]
}

// readWordFile loads one word per line from a file, uppercases, trims, and
// keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := game.Normalize(sc.Text())
		if game.ValidateWord(w) == nil {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a slice of
// valid uppercase 5-letter words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := game.Normalize(line)
		if game.ValidateWord(w) == nil {
			out = append(out, w)
		}
	}
	return out
}
