package commands

import (
	"context"
	"errors"
	"strings"

	"todo/storage"
	"todo/tasks"
)

// shortID is how many id characters are shown in listings
const shortID = 8

func init() {
	Register(&Command{
		Name:        "/add",
		Description: "Add a task to the top of the list",
		RawText:     true,
		Params: []Param{
			{Name: "text", Type: ParamTypeString, Description: "The text of the task", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}

			task, err := s.Add(ctx, strings.Join(args, " "))
			if errors.Is(err, tasks.ErrTextRequired) {
				printf("Error: %v\n", err)
				return false
			}

			printf("Added task: %s (ID: %s)\n", task.Text, short(task.ID))
			reportSaveError(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/list",
		Description: "List all tasks, newest first, with their positions and IDs",
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}

			list := s.Tasks()
			if len(list) == 0 {
				printf("No tasks yet. Add one with /add <text>\n")
				return false
			}

			printf("Tasks (%d remaining, %d total):\n", s.RemainingCount(), s.Total())
			for i, t := range list {
				status := "[ ]"
				if t.Done {
					status = "[✓]"
				}
				printf("  %2d. %s [%s] %s\n", i+1, status, short(t.ID), t.Text)
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/done",
		Description: "Toggle a task between done and not done",
		Params: []Param{
			{Name: "task", Type: ParamTypeString, Description: "The task's position in the list, its ID, or an ID prefix", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}
			if len(args) == 0 {
				printf("Usage: /done <task>\n")
				return false
			}

			id, err := s.Resolve(args[0])
			if err != nil {
				printf("Error: %v\n", err)
				return false
			}

			err = s.ToggleDone(ctx, id)
			if task, ok := s.Get(id); ok {
				if task.Done {
					printf("Marked task %s as done ✓\n", task.Text)
				} else {
					printf("Marked task %s as not done\n", task.Text)
				}
			}
			reportSaveError(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/rm",
		Description: "Remove a task",
		Params: []Param{
			{Name: "task", Type: ParamTypeString, Description: "The task's position in the list, its ID, or an ID prefix", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}
			if len(args) == 0 {
				printf("Usage: /rm <task>\n")
				return false
			}

			id, err := s.Resolve(args[0])
			if err != nil {
				printf("Error: %v\n", err)
				return false
			}

			task, _ := s.Get(id)
			err = s.Remove(ctx, id)
			printf("Removed task: %s\n", task.Text)
			reportSaveError(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/clear",
		Description: "Remove every completed task",
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}

			before := s.Total()
			err := s.ClearCompleted(ctx)
			printf("Cleared %d completed task(s)\n", before-s.Total())
			reportSaveError(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/clearall",
		Description: "Delete ALL tasks (asks for confirmation)",
		Destructive: true,
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}

			cleared, err := s.ClearAll(ctx)
			if !cleared {
				printf("Kept all tasks\n")
				return false
			}
			printf("Deleted all tasks\n")
			reportSaveError(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/count",
		Description: "Show how many tasks remain",
		Handler: func(ctx context.Context, args []string) bool {
			s := activeStore()
			if s == nil {
				return false
			}

			printf("%d remaining, %d total\n", s.RemainingCount(), s.Total())
			return false
		},
	})
}

// activeStore returns the store, printing an error if none is loaded
func activeStore() *tasks.Store {
	if store == nil {
		printf("Error: no task list loaded\n")
	}
	return store
}

// reportSaveError warns about a failed write-back. The change itself is kept
// for the rest of the session.
func reportSaveError(err error) {
	if err == nil {
		return
	}
	if storage.IsWriteError(err) {
		printf("Warning: change kept for this session but not saved: %v\n", err)
		return
	}
	printf("Error: %v\n", err)
}

func short(id string) string {
	if len(id) > shortID {
		return id[:shortID]
	}
	return id
}
