// Package history keeps per-file undo checkpoints for the editor.
package history

import (
	"errors"
	"sync"
	"time"
)

// ErrNothingToUndo is returned by Pop when a path has no snapshots.
var ErrNothingToUndo = errors.New("no edit history")

// Snapshot is the full text of a file before an edit, tagged with the
// encoding it was read under.
type Snapshot struct {
	Content  string
	Encoding string
	TakenAt  time.Time
}

// Store holds one snapshot stack per path. Stacks live only as long as the Store.
type Store struct {
	mu     sync.Mutex
	stacks map[string][]Snapshot

	// maxPerPath caps each stack; 0 means unbounded.
	maxPerPath int
	now        func() time.Time
}

// NewStore creates a Store. maxPerPath <= 0 disables the cap.
func NewStore(maxPerPath int) *Store {
	if maxPerPath < 0 {
		maxPerPath = 0
	}
	return &Store{
		stacks:     make(map[string][]Snapshot),
		maxPerPath: maxPerPath,
		now:        time.Now,
	}
}

// Push records content as the newest checkpoint for path.
// When the cap is reached the oldest checkpoint is dropped.
func (s *Store) Push(path, content, encoding string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := append(s.stacks[path], Snapshot{
		Content:  content,
		Encoding: encoding,
		TakenAt:  s.now(),
	})
	if s.maxPerPath > 0 && len(stack) > s.maxPerPath {
		stack = append(stack[:0:0], stack[len(stack)-s.maxPerPath:]...)
	}
	s.stacks[path] = stack
}

// Restore puts a previously popped snapshot back on top of path's stack.
// Used when writing the snapshot back to disk fails.
func (s *Store) Restore(path string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stacks[path] = append(s.stacks[path], snap)
}

// Pop removes and returns the newest checkpoint for path.
func (s *Store) Pop(path string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[path]
	if len(stack) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}

	snap := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(s.stacks, path)
	} else {
		s.stacks[path] = stack
	}
	return snap, nil
}

// Peek returns the newest checkpoint for path without removing it.
func (s *Store) Peek(path string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[path]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	return stack[len(stack)-1], true
}

// Len returns the number of checkpoints held for path.
func (s *Store) Len(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.stacks[path])
}

// Clear drops every checkpoint for path.
func (s *Store) Clear(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stacks, path)
}
