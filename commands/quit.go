package commands

import "context"

func init() {
	quit := func(ctx context.Context, args []string) bool {
		printf("Goodbye!\n")
		return true
	}

	Register(&Command{
		Name:        "/quit",
		Description: "Exit todo",
		Hidden:      true,
		Handler:     quit,
	})

	// Alias
	Register(&Command{
		Name:        "/exit",
		Description: "Exit todo",
		Hidden:      true,
		Handler:     quit,
	})
}
