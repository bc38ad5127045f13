package llm

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestToFunctionDeclarations(t *testing.T) {
	tools := []*Tool{
		{Name: "list", Description: "List tasks"},
		{
			Name:        "add",
			Description: "Add a task",
			Parameters: &ToolParameters{
				Type: "object",
				Properties: map[string]*ToolProperty{
					"text": {Type: "string", Description: "Task text"},
				},
				Required: []string{"text"},
			},
		},
	}

	decls := toFunctionDeclarations(tools)
	if len(decls) != 2 {
		t.Fatalf("Expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Parameters != nil {
		t.Error("Tool without params should have no schema")
	}

	add := decls[1]
	if add.Name != "add" || add.Parameters == nil {
		t.Fatalf("Unexpected declaration: %+v", add)
	}
	if add.Parameters.Type != genai.TypeObject {
		t.Errorf("Expected object schema, got %v", add.Parameters.Type)
	}
	prop, ok := add.Parameters.Properties["text"]
	if !ok || prop.Type != genai.TypeString || prop.Description != "Task text" {
		t.Errorf("Unexpected text property: %+v", prop)
	}
	if len(add.Parameters.Required) != 1 || add.Parameters.Required[0] != "text" {
		t.Errorf("Unexpected required list: %v", add.Parameters.Required)
	}
}

func TestToContents(t *testing.T) {
	history := []*Message{
		{Role: "system", Content: "User ran: /list"},
		{Role: "user", Content: "finish the milk task"},
		{Role: "assistant", ToolCalls: []ToolCall{{Name: "done", Arguments: map[string]any{"task": "2"}}}},
		{Role: "tool", Content: "Toggled task", ToolName: "done"},
		{Role: "assistant", Content: "Done!"},
		{Role: "assistant"},
	}

	contents := toContents(history)
	if len(contents) != 5 {
		t.Fatalf("Expected 5 contents (empty assistant turn dropped), got %d", len(contents))
	}

	wantRoles := []string{"user", "user", "model", "user", "model"}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("Content %d: expected role %s, got %s", i, wantRoles[i], c.Role)
		}
	}

	if contents[0].Parts[0].Text != "Context: User ran: /list" {
		t.Errorf("Unexpected system text: %q", contents[0].Parts[0].Text)
	}
	if fc := contents[2].Parts[0].FunctionCall; fc == nil || fc.Name != "done" {
		t.Errorf("Expected function call part, got %+v", contents[2].Parts[0])
	}
	if fr := contents[3].Parts[0].FunctionResponse; fr == nil || fr.Name != "done" || fr.Response["result"] != "Toggled task" {
		t.Errorf("Expected function response part, got %+v", contents[3].Parts[0])
	}
}

func TestToContentsGroupsToolResults(t *testing.T) {
	history := []*Message{
		{Role: "user", Content: "add milk and eggs"},
		{Role: "assistant", ToolCalls: []ToolCall{
			{Name: "add", Arguments: map[string]any{"text": "milk"}},
			{Name: "add", Arguments: map[string]any{"text": "eggs"}},
		}},
		{Role: "tool", Content: "Added task: milk", ToolName: "add"},
		{Role: "tool", Content: "Added task: eggs", ToolName: "add"},
		{Role: "assistant", ToolCalls: []ToolCall{{Name: "count"}}},
		{Role: "tool", Content: "2 remaining, 2 total", ToolName: "count"},
		{Role: "assistant", Content: "Both added."},
	}

	contents := toContents(history)
	wantParts := []int{1, 2, 2, 1, 1, 1}
	if len(contents) != len(wantParts) {
		t.Fatalf("Expected %d contents, got %d", len(wantParts), len(contents))
	}
	for i, c := range contents {
		if len(c.Parts) != wantParts[i] {
			t.Errorf("Content %d: expected %d parts, got %d", i, wantParts[i], len(c.Parts))
		}
	}

	results := contents[2].Parts
	if results[0].FunctionResponse.Response["result"] != "Added task: milk" ||
		results[1].FunctionResponse.Response["result"] != "Added task: eggs" {
		t.Errorf("Tool results out of order: %+v %+v", results[0].FunctionResponse, results[1].FunctionResponse)
	}
	if contents[2].Role != "user" {
		t.Errorf("Expected grouped results in a user turn, got %s", contents[2].Role)
	}
}

func TestSplitParts(t *testing.T) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText("Adding "),
		genai.NewPartFromFunctionCall("add", map[string]any{"text": "Buy milk"}),
		genai.NewPartFromText("now."),
	}, genai.RoleModel)

	text, calls := splitParts(content)
	if text != "Adding now." {
		t.Errorf("Unexpected text: %q", text)
	}
	if len(calls) != 1 || calls[0].Name != "add" || calls[0].Arguments["text"] != "Buy milk" {
		t.Errorf("Unexpected calls: %+v", calls)
	}

	if text, calls := splitParts(nil); text != "" || calls != nil {
		t.Errorf("Expected empty result for nil content")
	}
}
