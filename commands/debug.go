package commands

import "context"

var debugMode bool

func init() {
	Register(&Command{
		Name:        "/debug",
		Description: "Toggle printing of the assistant's tool calls",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			debugMode = !debugMode
			if debugMode {
				printf("Debug mode: ON\n")
			} else {
				printf("Debug mode: OFF\n")
			}
			return false
		},
	})
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	return debugMode
}

// SetDebugMode turns debug mode on or off
func SetDebugMode(on bool) {
	debugMode = on
}
