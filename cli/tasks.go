package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"todo/commands"
)

// oneShot lists hidden registry commands that still make sense outside the
// interactive prompt
var oneShot = map[string]bool{
	"/chat": true,
}

// taskCommands mirrors the command registry as cobra subcommands, so
// "todo add Buy milk" runs the same handler as "/add Buy milk" at the prompt
func taskCommands() []*cobra.Command {
	cmds := commands.List()
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})

	var result []*cobra.Command
	for _, c := range cmds {
		if c.Hidden && !oneShot[c.Name] {
			continue
		}
		result = append(result, newTaskCommand(c))
	}
	return result
}

func newTaskCommand(c *commands.Command) *cobra.Command {
	name := c.Name
	required := 0
	for _, p := range c.Params {
		if p.Required {
			required++
		}
	}

	return &cobra.Command{
		Use:   strings.TrimPrefix(c.Usage(), "/"),
		Short: c.Description,
		Args:  cobra.MinimumNArgs(required),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := newLineConfirmer(stdin, cmd.OutOrStdout(), assumeYes)
			sess, err := openSession(cmd.Context(), confirmer)
			if err != nil {
				return err
			}
			defer sess.Close()

			prev := commands.SetOutput(cmd.OutOrStdout())
			defer commands.SetOutput(prev)

			if _, err := commands.Execute(cmd.Context(), commandLine(name, args)); err != nil {
				return fmt.Errorf("%s: %w", strings.TrimPrefix(name, "/"), err)
			}
			return nil
		},
	}
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
