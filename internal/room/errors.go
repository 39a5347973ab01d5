// internal/room/errors.go
//
// Error taxonomy for room operations. Every failure here is a rejected
// operation, not a crash: lookup errors leave the room untouched and state
// conflicts fire before any partial mutation.

package room

import "errors"

var (
	// ErrRoomNotFound reports an unknown room ID or unregistered room code.
	ErrRoomNotFound = errors.New("room not found")

	// ErrPlayerNotFound reports a player ID not present in the room.
	ErrPlayerNotFound = errors.New("player not found in this room")

	// ErrRoomFull rejects a join against a room that already has two players.
	ErrRoomFull = errors.New("room is full")

	// ErrGameStarted rejects a join against a room that is no longer waiting.
	ErrGameStarted = errors.New("game already started")

	// ErrRoomNotPlaying rejects a guess while the room is not in progress.
	ErrRoomNotPlaying = errors.New("game is not in progress")

	// ErrPlayerDone rejects a guess from a player who already won or
	// exhausted their rounds. Guesses after completion are rejected, not
	// silently ignored.
	ErrPlayerDone = errors.New("player has already finished")

	// ErrCodeSpaceExhausted reports that room code generation hit its retry
	// cap. Not expected in practice given the 36^6 code space.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique room code")
)
