package tasks

import (
	"context"
	"errors"
)

// Task is a single to-do item.
type Task struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// ValidationError reports input that was rejected before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	// ErrTextRequired is returned by Add for empty or whitespace-only text.
	ErrTextRequired error = &ValidationError{Reason: "task text required"}

	// ErrTaskNotFound is returned by Resolve when no task matches a reference.
	ErrTaskNotFound = errors.New("task not found")
)

// Saver persists a full snapshot of the list. It is called after every
// committed mutation.
type Saver interface {
	Save(ctx context.Context, list []Task) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// ClearAllPrompt is the message shown before ClearAll empties the list.
const ClearAllPrompt = "Delete ALL tasks?"
