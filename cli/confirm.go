package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// isYes reports whether a typed answer accepts the prompt. Anything other
// than y or yes declines.
func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// lineConfirmer asks on a plain writer and reads the answer from a reader.
// It is used for one-shot commands.
type lineConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newLineConfirmer(in io.Reader, out io.Writer, assumeYes bool) *lineConfirmer {
	return &lineConfirmer{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (c *lineConfirmer) Confirm(message string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", message)
	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(c.out)
		return false
	}
	return isYes(answer)
}

// readlineConfirmer asks on the interactive prompt
type readlineConfirmer struct {
	rl        *readline.Instance
	assumeYes bool
}

func (c *readlineConfirmer) Confirm(message string) bool {
	if c.assumeYes {
		return true
	}
	c.rl.SetPrompt(message + " [y/N] ")
	defer c.rl.SetPrompt(prompt)

	answer, err := c.rl.Readline()
	if err != nil {
		return false
	}
	return isYes(answer)
}
