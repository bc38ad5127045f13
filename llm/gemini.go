package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// maxToolRounds bounds the tool calling loop of one chat turn
const maxToolRounds = 10

type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a client for the Gemini API. A nil config uses
// DefaultConfig.
func NewGeminiClient(ctx context.Context, apiKey string, config *Config) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{client: client, config: config}, nil
}

func (g *GeminiClient) Chat(ctx context.Context, prompt string) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	result, err := g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), g.generateConfig(g.config.System, nil))
	if err != nil {
		return nil, err
	}

	candidate, err := firstCandidate(result)
	if err != nil {
		return nil, err
	}

	resp := &Response{FinishReason: string(candidate.FinishReason)}
	resp.Text, _ = splitParts(candidate.Content)
	addUsage(resp, result)
	return resp, nil
}

func (g *GeminiClient) ChatWithTools(ctx context.Context, message string, history []*Message, tools []*Tool, executor ToolExecutor) (*Response, []*Message, error) {
	if strings.TrimSpace(message) == "" {
		return nil, history, ErrEmptyPrompt
	}

	genConfig := g.generateConfig(toolSystemPrompt(), toFunctionDeclarations(tools))

	newHistory := make([]*Message, 0, len(history)+1)
	newHistory = append(newHistory, history...)
	newHistory = append(newHistory, &Message{Role: "user", Content: message})
	contents := toContents(newHistory)
	resp := &Response{}

	// Tool calling loop
	for round := 0; round < maxToolRounds; round++ {
		result, err := g.client.Models.GenerateContent(ctx, g.config.Model, contents, genConfig)
		if err != nil {
			return nil, newHistory, err
		}
		addUsage(resp, result)

		candidate, err := firstCandidate(result)
		if err != nil {
			return nil, newHistory, err
		}

		text, calls := splitParts(candidate.Content)
		contents = append(contents, candidate.Content)
		newHistory = append(newHistory, &Message{Role: "assistant", Content: text, ToolCalls: calls})

		// If no function calls, return the text response
		if len(calls) == 0 {
			resp.Text = text
			resp.FinishReason = string(candidate.FinishReason)
			return resp, newHistory, nil
		}

		// Execute function calls and build responses
		var responses []*genai.Part
		for _, call := range calls {
			output := executor(call.Name, call.Arguments)
			responses = append(responses, genai.NewPartFromFunctionResponse(call.Name, map[string]any{"result": output}))
			newHistory = append(newHistory, &Message{Role: "tool", Content: output, ToolName: call.Name})
		}
		contents = append(contents, genai.NewContentFromParts(responses, genai.RoleUser))
	}

	return nil, newHistory, ErrTooManyCalls
}

func (g *GeminiClient) Close() error {
	// The genai client doesn't have a Close method
	return nil
}

func (g *GeminiClient) generateConfig(system string, decls []*genai.FunctionDeclaration) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: g.config.MaxTokens,
		Temperature:     genai.Ptr(g.config.Temperature),
	}
	if system != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(decls) > 0 {
		genConfig.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	return genConfig
}

func firstCandidate(result *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, ErrNoResponse
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, ErrNoResponse
	}
	return candidate, nil
}

func addUsage(resp *Response, result *genai.GenerateContentResponse) {
	if result.UsageMetadata == nil {
		return
	}
	resp.InputTokens += int64(result.UsageMetadata.PromptTokenCount)
	resp.OutputTokens += int64(result.UsageMetadata.CandidatesTokenCount)
	resp.TokensUsed += int64(result.UsageMetadata.TotalTokenCount)
}

// splitParts separates the text of a model turn from its function calls
func splitParts(content *genai.Content) (string, []ToolCall) {
	if content == nil {
		return "", nil
	}

	var text strings.Builder
	var calls []ToolCall
	for _, part := range content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, ToolCall{Name: part.FunctionCall.Name, Arguments: part.FunctionCall.Args})
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), calls
}

func toFunctionDeclarations(tools []*Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if t.Parameters != nil {
			schema := &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(t.Parameters.Properties)),
				Required:   t.Parameters.Required,
			}
			for name, prop := range t.Parameters.Properties {
				schema.Properties[name] = &genai.Schema{
					Type:        schemaType(prop.Type),
					Description: prop.Description,
				}
			}
			decl.Parameters = schema
		}
		decls = append(decls, decl)
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// toContents converts neutral history into Gemini contents. Gemini has no
// system turn inside a conversation, so system entries become user text.
// Consecutive tool results are grouped into one turn, matching the function
// calls of the model turn before them.
func toContents(history []*Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	var toolTurn *genai.Content
	for _, msg := range history {
		if msg.Role != "tool" {
			toolTurn = nil
		}
		switch msg.Role {
		case "assistant":
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.NewPartFromText(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, genai.NewPartFromFunctionCall(call.Name, call.Arguments))
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		case "tool":
			part := genai.NewPartFromFunctionResponse(msg.ToolName, map[string]any{"result": msg.Content})
			if toolTurn != nil {
				toolTurn.Parts = append(toolTurn.Parts, part)
				continue
			}
			toolTurn = genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser)
			contents = append(contents, toolTurn)
		case "system":
			contents = append(contents, genai.NewContentFromText("Context: "+msg.Content, genai.RoleUser))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents
}
