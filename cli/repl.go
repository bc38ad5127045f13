package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"todo/commands"
	"todo/config"
)

const prompt = "> "

func runREPL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(config.GlobalDir(), "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return fmt.Errorf("failed to start prompt: %w", err)
	}
	defer rl.Close()

	sess, err := openSession(ctx, &readlineConfirmer{rl: rl, assumeYes: assumeYes})
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Printf("Welcome to todo! %d remaining, %d total. Type /help for available commands.\n",
		sess.store.RemainingCount(), sess.store.Total())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input := routeInput(line)
		if input == "" {
			continue
		}

		quit, output, err := commands.ExecuteWithOutput(ctx, input)
		if err != nil {
			fmt.Printf("%v. Type /help for available commands.\n", err)
			continue
		}
		if output != "" {
			fmt.Println(output)
		}

		// Let the assistant see what the user did by hand
		if !isChat(input) {
			commands.AddCommandContext(input, output)
		}

		if quit {
			break
		}
	}
	return nil
}

// routeInput turns a prompt line into a command line. Text without a leading
// slash is added as a task.
func routeInput(line string) string {
	input := strings.TrimSpace(line)
	if input == "" || strings.HasPrefix(input, "/") {
		return input
	}
	return "/add " + input
}

func isChat(input string) bool {
	name := strings.ToLower(strings.Fields(input)[0])
	return name == "/chat" || name == "/clearchat" || name == "/usage"
}
