// Package history implements the session-scoped undo/redo store: two ordered
// stacks of image snapshots per caller-supplied session identifier. A push
// appends to the undo stack and clears the redo stack in full; undo and redo
// move entries between the stack tails.
package history

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/kritik8/pixgonzDIP/internal/logger"
)

// ErrNoHistory reports that a session has no state to undo or redo to.
var ErrNoHistory = errors.New("no history available")

// entry is one snapshot: the zstd-compressed pixel payload plus its
// dimensions and a millisecond timestamp.
type entry struct {
	timestamp int64
	width     int
	height    int
	payload   []byte
}

type session struct {
	mu   sync.Mutex
	undo []entry
	redo []entry
}

// Store keeps the per-session histories in memory. The map lookup is guarded
// by its own lock; mutations on one session serialize on that session's
// mutex, so concurrent requests against the same identifier cannot interleave
// a push with an undo. Sessions are created lazily on first push and are
// never expired: depth is the only bound, and zero means unbounded.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	depth    int
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	logger   logger.Logger
}

// NewStore creates a store with the given per-session depth cap (0 for
// unbounded).
func NewStore(depth int, log logger.Logger) (*Store, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot decoder: %w", err)
	}

	return &Store{
		sessions: make(map[string]*session),
		depth:    depth,
		encoder:  encoder,
		decoder:  decoder,
		logger:   log,
	}, nil
}

func (s *Store) session(sessionID string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	return sess
}

// Push appends a snapshot to the session's undo stack and empties the redo
// stack.
func (s *Store) Push(sessionID string, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("history push: no image buffer")
	}

	snapshot := entry{
		timestamp: time.Now().UnixMilli(),
		width:     img.Rect.Dx(),
		height:    img.Rect.Dy(),
		payload:   s.encoder.EncodeAll(img.Pix, nil),
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if s.depth > 0 && len(sess.undo) >= s.depth {
		sess.undo = append(sess.undo[:0], sess.undo[len(sess.undo)-s.depth+1:]...)
	}
	sess.undo = append(sess.undo, snapshot)
	sess.redo = sess.redo[:0]

	s.logger.Debug("HistoryStore", "state pushed", map[string]interface{}{
		"session":    sessionID,
		"undo_depth": len(sess.undo),
	})
	return nil
}

// Undo moves the latest snapshot onto the redo stack and returns the state
// beneath it. If no prior state remains it returns ErrNoHistory; the moved
// entry stays redoable either way.
func (s *Store) Undo(sessionID string) (*image.NRGBA, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.undo) == 0 {
		return nil, ErrNoHistory
	}

	last := sess.undo[len(sess.undo)-1]
	sess.undo = sess.undo[:len(sess.undo)-1]
	sess.redo = append(sess.redo, last)

	if len(sess.undo) == 0 {
		return nil, ErrNoHistory
	}
	return s.decode(sess.undo[len(sess.undo)-1])
}

// Redo moves the latest redoable snapshot back onto the undo stack and
// returns it.
func (s *Store) Redo(sessionID string) (*image.NRGBA, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.redo) == 0 {
		return nil, ErrNoHistory
	}

	last := sess.redo[len(sess.redo)-1]
	sess.redo = sess.redo[:len(sess.redo)-1]
	sess.undo = append(sess.undo, last)

	return s.decode(last)
}

func (s *Store) decode(snapshot entry) (*image.NRGBA, error) {
	pix, err := s.decoder.DecodeAll(snapshot.payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, snapshot.width, snapshot.height))
	if len(pix) != len(img.Pix) {
		return nil, fmt.Errorf("snapshot payload size mismatch: got %d, want %d", len(pix), len(img.Pix))
	}
	copy(img.Pix, pix)
	return img, nil
}

// Close releases the shared codec resources.
func (s *Store) Close() {
	s.decoder.Close()
	_ = s.encoder.Close()
}
