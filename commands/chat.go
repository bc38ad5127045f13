package commands

import (
	"context"
	"fmt"
	"strings"

	"todo/llm"
)

// chatHistory stores the conversation history for the /chat command
var chatHistory []*llm.Message

// Session usage tracking
var (
	sessionInputTokens  int64
	sessionOutputTokens int64
	sessionPromptCount  int
)

// maxCommandContextEntries limits how many command context entries to keep
const maxCommandContextEntries = 10

const commandContextPrefix = "User ran:"

// AddCommandContext adds a direct command and its output to the chat history
// so the LLM has context about recent user actions.
func AddCommandContext(command string, output string) {
	chatHistory = append(chatHistory, &llm.Message{
		Role:    "system",
		Content: fmt.Sprintf("%s %s\nOutput: %s", commandContextPrefix, command, output),
	})

	trimCommandContext()
}

// trimCommandContext drops the oldest command context entries beyond the limit
func trimCommandContext() {
	var contextCount int
	for _, msg := range chatHistory {
		if isCommandContext(msg) {
			contextCount++
		}
	}

	if contextCount <= maxCommandContextEntries {
		return
	}

	toRemove := contextCount - maxCommandContextEntries
	var newHistory []*llm.Message
	for _, msg := range chatHistory {
		if toRemove > 0 && isCommandContext(msg) {
			toRemove--
			continue
		}
		newHistory = append(newHistory, msg)
	}
	chatHistory = newHistory
}

func isCommandContext(msg *llm.Message) bool {
	return msg.Role == "system" && strings.HasPrefix(msg.Content, commandContextPrefix)
}

func init() {
	Register(&Command{
		Name:        "/clearchat",
		Description: "Clear the chat conversation history",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			chatHistory = nil
			printf("Chat history cleared.\n")
			return false
		},
	})

	Register(&Command{
		Name:        "/usage",
		Description: "Show session token usage statistics",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			if sessionPromptCount == 0 {
				printf("No chat usage in this session yet.\n")
				return false
			}

			printf("Session Usage Statistics:\n")
			printf("  Prompts:       %d\n", sessionPromptCount)
			printf("  Input tokens:  %d\n", sessionInputTokens)
			printf("  Output tokens: %d\n", sessionOutputTokens)
			printf("  Total tokens:  %d\n", sessionInputTokens+sessionOutputTokens)
			return false
		},
	})

	Register(&Command{
		Name:        "/chat",
		Description: "Ask the assistant to manage your tasks in plain language",
		Hidden:      true, // Exclude from tool generation
		RawText:     true,
		Params: []Param{
			{Name: "message", Type: ParamTypeString, Description: "The message to send to the assistant", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			if len(args) == 0 {
				printf("Usage: /chat <message>\n")
				return false
			}

			client := GetLLMClient()
			if client == nil {
				printf("Error: assistant not available. Set GEMINI_API_KEY in the environment or .env.\n")
				return false
			}

			message := strings.Join(args, " ")
			response, newHistory, err := client.ChatWithTools(ctx, message, chatHistory, GenerateToolDefinitions(), toolExecutor(ctx))
			if err != nil {
				printf("Error: %v\n", err)
				return false
			}

			// Update conversation history
			chatHistory = newHistory

			printf("%s\n", response.Text)
			printUsageStats(response)
			return false
		},
	})
}

// toolExecutor runs registry commands on behalf of the model and returns
// their captured output
func toolExecutor(ctx context.Context) llm.ToolExecutor {
	return func(name string, fnArgs map[string]any) string {
		cmd := GetByName(name)
		if cmd == nil || cmd.Hidden {
			return fmt.Sprintf("Error: unknown tool %s", name)
		}

		cmdStr := cmd.Name
		if cmdArgs := argsFromTool(cmd, fnArgs); len(cmdArgs) > 0 {
			cmdStr += " " + strings.Join(cmdArgs, " ")
		}

		if IsDebugMode() {
			printf("[tool] %s\n", cmdStr)
		}

		_, output, err := ExecuteWithOutput(ctx, cmdStr)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}

		if IsDebugMode() && output != "" {
			printf("[tool output] %s\n", output)
		}
		return output
	}
}

// printUsageStats displays token usage and updates session totals
func printUsageStats(response *llm.Response) {
	sessionInputTokens += response.InputTokens
	sessionOutputTokens += response.OutputTokens
	sessionPromptCount++

	// Only display if we have token data
	if response.TokensUsed == 0 && response.InputTokens == 0 && response.OutputTokens == 0 {
		return
	}

	printf("\n[Tokens: %d in / %d out]\n", response.InputTokens, response.OutputTokens)
}
