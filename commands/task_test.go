package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/storage"
	"todo/tasks"
)

// confirmAnswer is what the test confirmer replies
var confirmAnswer bool

// setupTestStore creates a file-backed store in a temp dir for testing
func setupTestStore(t *testing.T) *storage.Persister {
	t.Helper()

	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test backend: %v", err)
	}
	persister := storage.NewPersister(backend)

	confirmAnswer = false
	SetStore(tasks.NewStore(nil, persister, tasks.ConfirmFunc(func(string) bool {
		return confirmAnswer
	})))
	t.Cleanup(func() {
		SetStore(nil)
		backend.Close()
	})

	return persister
}

// captureCommandOutput runs a command and captures its output
func captureCommandOutput(t *testing.T, input string) string {
	t.Helper()

	_, output, err := ExecuteWithOutput(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", input, err)
	}
	return output
}

func TestTaskCommands(t *testing.T) {
	persister := setupTestStore(t)

	// Create tasks
	output := captureCommandOutput(t, "/add Buy milk")
	if !strings.Contains(output, "Added task: Buy milk") {
		t.Errorf("Expected task creation message, got: %s", output)
	}
	captureCommandOutput(t, "/add Walk the dog")

	// List tasks, newest first
	output = captureCommandOutput(t, "/list")
	if !strings.Contains(output, "2 remaining, 2 total") {
		t.Errorf("Expected counts in header, got: %s", output)
	}
	lines := strings.Split(output, "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "1. [ ]") || !strings.Contains(lines[1], "Walk the dog") {
		t.Errorf("Expected newest task first, got: %s", output)
	}

	// Mark as done by position
	output = captureCommandOutput(t, "/done 2")
	if !strings.Contains(output, "Marked task Buy milk as done") {
		t.Errorf("Expected done message, got: %s", output)
	}

	output = captureCommandOutput(t, "/list")
	if !strings.Contains(output, "[✓]") {
		t.Errorf("Expected checked status, got: %s", output)
	}

	// Toggle back
	output = captureCommandOutput(t, "/done 2")
	if !strings.Contains(output, "Marked task Buy milk as not done") {
		t.Errorf("Expected undone message, got: %s", output)
	}

	// Remove by id prefix
	id := GetStore().Tasks()[0].ID
	output = captureCommandOutput(t, "/rm "+id[:8])
	if !strings.Contains(output, "Removed task: Walk the dog") {
		t.Errorf("Expected removal message, got: %s", output)
	}

	output = captureCommandOutput(t, "/count")
	if output != "1 remaining, 1 total" {
		t.Errorf("Unexpected count output: %s", output)
	}

	// Every change was written back
	stored, err := persister.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(stored) != 1 || stored[0].Text != "Buy milk" {
		t.Errorf("Expected stored list with Buy milk, got %v", stored)
	}
}

func TestAddBlankText(t *testing.T) {
	setupTestStore(t)

	for _, input := range []string{"/add", "/add    "} {
		output := captureCommandOutput(t, input)
		if output != "Error: task text required" {
			t.Errorf("%q: expected validation error, got: %s", input, output)
		}
	}
	if GetStore().Total() != 0 {
		t.Errorf("Blank adds should not create tasks")
	}
}

func TestAddKeepsInnerWhitespace(t *testing.T) {
	setupTestStore(t)

	tests := []struct {
		input string
		want  string
	}{
		{"/add Buy   milk", "Buy   milk"},
		{"/add a\tb", "a\tb"},
		{"/ADD\t  padded text  ", "padded text"},
	}

	for _, tt := range tests {
		captureCommandOutput(t, tt.input)
		if got := GetStore().Tasks()[0].Text; got != tt.want {
			t.Errorf("%q: text %q, want %q", tt.input, got, tt.want)
		}
	}

	// The assistant's add tool goes through the same path
	toolExecutor(context.Background())("add", map[string]any{"text": "Call   mom"})
	if got := GetStore().Tasks()[0].Text; got != "Call   mom" {
		t.Errorf("tool add: text %q, want %q", got, "Call   mom")
	}
}

func TestUnknownTaskReference(t *testing.T) {
	setupTestStore(t)
	captureCommandOutput(t, "/add Only task")

	for _, input := range []string{"/done 5", "/rm nonexistent", "/done"} {
		output := captureCommandOutput(t, input)
		if !strings.Contains(output, "Error") && !strings.Contains(output, "Usage") {
			t.Errorf("%q: expected error or usage, got: %s", input, output)
		}
	}
	if GetStore().Total() != 1 {
		t.Errorf("Failed references should not change the list")
	}
}

func TestClearCommands(t *testing.T) {
	setupTestStore(t)
	for _, text := range []string{"one", "two", "three"} {
		captureCommandOutput(t, "/add "+text)
	}
	captureCommandOutput(t, "/done 1")
	captureCommandOutput(t, "/done 3")

	output := captureCommandOutput(t, "/clear")
	if output != "Cleared 2 completed task(s)" {
		t.Errorf("Unexpected clear output: %s", output)
	}

	confirmAnswer = false
	output = captureCommandOutput(t, "/clearall")
	if output != "Kept all tasks" || GetStore().Total() != 1 {
		t.Errorf("Declined clearall should keep tasks, got: %s", output)
	}

	confirmAnswer = true
	output = captureCommandOutput(t, "/clearall")
	if output != "Deleted all tasks" || GetStore().Total() != 0 {
		t.Errorf("Confirmed clearall should delete tasks, got: %s", output)
	}
}

// brokenBackend accepts reads but rejects every write
type brokenBackend struct {
	storage.Backend
}

func (brokenBackend) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestSaveFailureWarns(t *testing.T) {
	persister := storage.NewPersister(brokenBackend{storage.NewMemoryBackend()})
	SetStore(tasks.NewStore(nil, persister, nil))
	t.Cleanup(func() { SetStore(nil) })

	output := captureCommandOutput(t, "/add Survives anyway")
	if !strings.Contains(output, "Added task: Survives anyway") {
		t.Errorf("Expected add to succeed in memory, got: %s", output)
	}
	if !strings.Contains(output, "Warning: change kept for this session but not saved") {
		t.Errorf("Expected save warning, got: %s", output)
	}
	if GetStore().Total() != 1 {
		t.Errorf("In-memory task should survive a failed save")
	}
}

func TestNoStoreLoaded(t *testing.T) {
	SetStore(nil)
	output := captureCommandOutput(t, "/list")
	if output != "Error: no task list loaded" {
		t.Errorf("Unexpected output: %s", output)
	}
}

func TestExportCommand(t *testing.T) {
	setupTestStore(t)
	captureCommandOutput(t, "/add Buy milk")

	output := captureCommandOutput(t, "/export csv")
	if !strings.HasPrefix(output, "id,text,done") || !strings.Contains(output, "Buy milk,false") {
		t.Errorf("Unexpected csv export: %s", output)
	}

	path := filepath.Join(t.TempDir(), "tasks.pdf")
	output = captureCommandOutput(t, "/export pdf "+path)
	if !strings.Contains(output, "Exported 1 task(s)") {
		t.Errorf("Unexpected export output: %s", output)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("Expected a PDF file, err=%v", err)
	}

	output = captureCommandOutput(t, "/export pdf")
	if !strings.Contains(output, "needs a file path") {
		t.Errorf("Expected pdf path error, got: %s", output)
	}

	output = captureCommandOutput(t, "/export xml")
	if !strings.Contains(output, "unknown format") {
		t.Errorf("Expected unknown format error, got: %s", output)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := Execute(context.Background(), "/nope"); err == nil {
		t.Error("Expected error for unknown command")
	}
	if _, err := Execute(context.Background(), "   "); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestQuitCommands(t *testing.T) {
	for _, input := range []string{"/quit", "/EXIT"} {
		quit, output, err := ExecuteWithOutput(context.Background(), input)
		if err != nil || !quit {
			t.Errorf("%q: expected quit, got quit=%v err=%v", input, quit, err)
		}
		if output != "Goodbye!" {
			t.Errorf("%q: unexpected output %q", input, output)
		}
	}
}
