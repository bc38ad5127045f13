package commands

import (
	"context"
	"sort"
)

func init() {
	Register(&Command{
		Name:        "/help",
		Description: "Show available commands",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			printf("Available commands:\n")

			// Get all commands and sort by name
			cmds := List()
			sort.Slice(cmds, func(i, j int) bool {
				return cmds[i].Name < cmds[j].Name
			})

			for _, cmd := range cmds {
				printf("  %-22s - %s\n", cmd.Usage(), cmd.Description)
			}
			printf("\nText without a leading / is added as a new task.\n")

			return false
		},
	})
}
