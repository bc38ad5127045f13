package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"todo/llm"
	"todo/tasks"
)

// ParamType defines the type of a command parameter
type ParamType string

const (
	ParamTypeString ParamType = "string"
)

// Param defines a parameter for a command
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Handler     func(ctx context.Context, args []string) bool // returns true to quit
	Params      []Param                                       // parameter definitions for tool generation
	Hidden      bool                                          // if true, exclude from tool generation
	Destructive bool                                          // informational; the store asks for confirmation itself
	RawText     bool                                          // if true, the handler gets the rest of the line as one argument
}

// Usage returns the one-line usage string, e.g. "/done <task>"
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, p := range c.Params {
		if p.Required {
			fmt.Fprintf(&b, " <%s>", p.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", p.Name)
		}
	}
	return b.String()
}

var (
	registry  = make(map[string]*Command)
	store     *tasks.Store
	llmClient llm.Client
	out       io.Writer = os.Stdout
)

// Register adds a command to the registry
func Register(cmd *Command) {
	registry[strings.ToLower(cmd.Name)] = cmd
}

// SetStore sets the global store for commands to use
func SetStore(s *tasks.Store) {
	store = s
}

// GetStore returns the global store
func GetStore() *tasks.Store {
	return store
}

// SetLLMClient sets the global LLM client for commands to use
func SetLLMClient(c llm.Client) {
	llmClient = c
}

// GetLLMClient returns the global LLM client
func GetLLMClient() llm.Client {
	return llmClient
}

// SetOutput redirects command output, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

func printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Execute runs a command by name with arguments
func Execute(ctx context.Context, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false, fmt.Errorf("empty command")
	}

	cmdName, rest := input, ""
	if i := strings.IndexFunc(input, unicode.IsSpace); i >= 0 {
		cmdName, rest = input[:i], input[i+1:]
	}
	cmdName = strings.ToLower(cmdName)

	cmd, exists := registry[cmdName]
	if !exists {
		return false, fmt.Errorf("unknown command: %s", cmdName)
	}

	if cmd.Handler == nil {
		return false, fmt.Errorf("command %s is not available", cmdName)
	}

	return cmd.Handler(ctx, splitArgs(cmd, rest)), nil
}

// splitArgs breaks the text after the command name into handler arguments.
// RawText commands get it back untouched so inner whitespace survives.
func splitArgs(cmd *Command, rest string) []string {
	if !cmd.RawText {
		return strings.Fields(rest)
	}
	if strings.TrimSpace(rest) == "" {
		return nil
	}
	return []string{rest}
}

// ExecuteWithOutput runs a command and returns its captured output
func ExecuteWithOutput(ctx context.Context, input string) (quit bool, output string, err error) {
	output = captureOutput(func() {
		quit, err = Execute(ctx, input)
	})
	return quit, output, err
}

// captureOutput collects everything fn prints
func captureOutput(fn func()) string {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	fn()

	return strings.TrimSpace(buf.String())
}

// List returns all registered commands
func List() []*Command {
	cmds := make([]*Command, 0, len(registry))
	for _, cmd := range registry {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// GetByName returns a command by name (with or without leading /)
func GetByName(name string) *Command {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return registry[strings.ToLower(name)]
}

// GenerateToolDefinitions creates Tool definitions from registered commands
func GenerateToolDefinitions() []*llm.Tool {
	var tools []*llm.Tool

	for _, cmd := range registry {
		if cmd.Hidden {
			continue
		}

		// Build properties and required arrays from Params
		properties := make(map[string]*llm.ToolProperty)
		var required []string

		for _, p := range cmd.Params {
			properties[p.Name] = &llm.ToolProperty{
				Type:        string(p.Type),
				Description: p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}

		tool := &llm.Tool{
			Name:        strings.TrimPrefix(cmd.Name, "/"),
			Description: cmd.Description,
		}

		// Only add Parameters if there are any
		if len(properties) > 0 {
			tool.Parameters = &llm.ToolParameters{
				Type:       "object",
				Properties: properties,
				Required:   required,
			}
		}

		tools = append(tools, tool)
	}

	return tools
}

// argsFromTool orders tool call arguments the way the command's handler
// expects them
func argsFromTool(cmd *Command, args map[string]any) []string {
	var result []string
	for _, p := range cmd.Params {
		val, ok := args[p.Name]
		if !ok || val == nil {
			continue
		}
		result = append(result, fmt.Sprintf("%v", val))
	}
	return result
}
