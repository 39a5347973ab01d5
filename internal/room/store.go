// internal/room/store.go
//
// In-memory implementation of the room Store interface.
// Keyed storage for rooms plus a secondary index from human-readable room
// code to room ID, maintained in lockstep with room creation/deletion.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Deleting a room removes the primary entry and its code-index entry
//     atomically from the caller's point of view.
//   - State is lost when the process restarts.

package room

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
)

// Store defines keyed storage for rooms. Implementations may be backed by
// memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a room and registers its code.
	Save(ctx context.Context, r *Room) error

	// Get retrieves a room by ID; ErrRoomNotFound if missing.
	Get(ctx context.Context, roomID string) (*Room, error)

	// GetByCode resolves a room through the code index; ErrRoomNotFound if
	// the code is unregistered.
	GetByCode(ctx context.Context, code string) (*Room, error)

	// Delete removes a room and its code-index entry.
	Delete(ctx context.Context, roomID string) error

	// All enumerates every stored room (for the expiry sweep).
	All(ctx context.Context) ([]*Room, error)

	// NewCode returns a 6-character code unique against the live index.
	NewCode(ctx context.Context) (string, error)
}

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6

	// maxCodeAttempts bounds the generate-check-retry loop. The code space
	// (36^6) dwarfs any realistic concurrent room count, so hitting the cap
	// signals resource exhaustion rather than bad luck.
	maxCodeAttempts = 100
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	rooms    map[string]*Room  // keyed by Room.RoomID
	codeToID map[string]string // room code → room ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		rooms:    make(map[string]*Room),
		codeToID: make(map[string]string),
	}
}

// Save adds or updates the room and its code-index entry.
func (m *memory) Save(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.RoomID] = r
	m.codeToID[r.RoomCode] = r.RoomID
	return nil
}

// Get looks up a room by ID.
func (m *memory) Get(ctx context.Context, roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rooms[roomID]; ok {
		return r, nil
	}
	return nil, ErrRoomNotFound
}

// GetByCode resolves the code index, then the primary map.
func (m *memory) GetByCode(ctx context.Context, code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.codeToID[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, ErrRoomNotFound
}

// Delete removes both the primary entry and the code-index entry.
func (m *memory) Delete(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok {
		delete(m.codeToID, r.RoomCode)
		delete(m.rooms, roomID)
	}
	return nil
}

// All returns a snapshot slice of every stored room.
func (m *memory) All(ctx context.Context) ([]*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

// NewCode generates a room code, retrying on collision against the live
// index up to maxCodeAttempts.
func (m *memory) NewCode(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode()
		if _, taken := m.codeToID[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// randomCode draws codeLength characters from codeCharset with crypto/rand.
func randomCode() string {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range b {
		n, _ := rand.Int(rand.Reader, max)
		b[i] = codeCharset[n.Int64()]
	}
	return string(b)
}
