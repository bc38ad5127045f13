package llm

// Response is the final answer of one chat turn, after any tool calls
type Response struct {
	Text         string
	FinishReason string
	TokensUsed   int64
	InputTokens  int64
	OutputTokens int64
}

type Config struct {
	Model       string
	MaxTokens   int32
	Temperature float32
	System      string
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		MaxTokens:   8192,
		Temperature: 0.7,
		System:      "",
	}
}

// Message is one provider-neutral conversation entry.
// Role is "user", "assistant", "tool" or "system".
type Message struct {
	Role      string
	Content   string
	ToolCalls []ToolCall
	// ToolName is set on "tool" messages and names the call being answered
	ToolName string
}

type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Tool describes a function the model may call
type Tool struct {
	Name        string
	Description string
	Parameters  *ToolParameters
}

type ToolParameters struct {
	Type       string
	Properties map[string]*ToolProperty
	Required   []string
}

type ToolProperty struct {
	Type        string
	Description string
}
