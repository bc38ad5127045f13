package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// minPrefixLen is the shortest id prefix Resolve accepts.
	minPrefixLen = 6

	maxIDAttempts = 8
)

// Store owns the task list, newest first. Every mutation that changes the
// list is followed by a synchronous Save of the full snapshot. A failed save
// is returned to the caller but the in-memory change is kept.
//
// Store is not safe for concurrent use; it expects a single writer.
type Store struct {
	tasks     []Task
	saver     Saver
	confirmer Confirmer
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces NewID as the id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates a store seeded with initial. Tasks with blank text and
// repeated ids are dropped so the seeded list satisfies the same invariants
// as one built through Add. A nil saver disables persistence and a nil
// confirmer declines every confirmation.
func NewStore(initial []Task, saver Saver, confirmer Confirmer, opts ...Option) *Store {
	s := &Store{
		tasks:     make([]Task, 0, len(initial)),
		saver:     saver,
		confirmer: confirmer,
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]bool, len(initial))
	for _, t := range initial {
		if t.ID == "" || seen[t.ID] || strings.TrimSpace(t.Text) == "" {
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	return s
}

// Add trims text and prepends a new open task. Invalid UTF-8 sequences are
// replaced with U+FFFD so the stored text is exactly what the codecs persist.
// Blank text returns ErrTextRequired and leaves the list untouched. If the
// write-back fails the task is still returned, together with the save error.
func (s *Store) Add(ctx context.Context, text string) (Task, error) {
	text = strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
	if text == "" {
		return Task{}, ErrTextRequired
	}

	task := Task{ID: s.uniqueID(), Text: text}
	s.tasks = append([]Task{task}, s.tasks...)

	return task, s.save(ctx)
}

// ToggleDone flips the done flag of the task with the given id. Unknown ids
// are ignored.
func (s *Store) ToggleDone(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Done = !s.tasks[i].Done
	return s.save(ctx)
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.save(ctx)
}

// ClearCompleted removes every done task, keeping the order of the rest.
func (s *Store) ClearCompleted(ctx context.Context) error {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		return nil
	}
	s.tasks = kept
	return s.save(ctx)
}

// ClearAll empties the list after the confirmer agrees. It reports whether
// the list was cleared.
func (s *Store) ClearAll(ctx context.Context) (bool, error) {
	if s.confirmer == nil || !s.confirmer.Confirm(ClearAllPrompt) {
		return false, nil
	}
	s.tasks = []Task{}
	return true, s.save(ctx)
}

// RemainingCount returns the number of tasks not yet done.
func (s *Store) RemainingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// Total returns the number of tasks in the list.
func (s *Store) Total() int {
	return len(s.tasks)
}

// Tasks returns a copy of the list, newest first.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Resolve maps a user reference to a task id.
// It checks: exact id -> 1-based list position -> unique id prefix (min 6 chars)
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrTaskNotFound)
	}

	if s.indexOf(ref) >= 0 {
		return ref, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(s.tasks) {
			return s.tasks[n-1].ID, nil
		}
		return "", fmt.Errorf("%w: no task at position %d", ErrTaskNotFound, n)
	}

	if len(ref) >= minPrefixLen {
		var matches []string
		for _, t := range s.tasks {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t.ID)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return "", fmt.Errorf("ambiguous task id prefix: %s (matches %d tasks)", ref, len(matches))
		}
	}

	return "", fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws ids until one is not already in the list.
func (s *Store) uniqueID() string {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
	for {
		id := fallbackID(time.Now())
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) save(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(ctx, s.Tasks())
}
