package agent

import (
	"testing"
)

func testToolDefs() []ToolDef {
	return []ToolDef{
		{
			Name:        "list_events",
			Description: "List events",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{"type": "string"},
				},
				"required": []any{"status"},
			},
		},
	}
}

func TestOpenAIConversationCarriesTools(t *testing.T) {
	conv := newOpenAIProvider("gpt-4o", "test-key").NewConversation(systemPrompt, testToolDefs())

	oc, ok := conv.(*openaiConversation)
	if !ok {
		t.Fatalf("unexpected conversation type %T", conv)
	}
	if len(oc.params.Tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(oc.params.Tools))
	}
	if name := oc.params.Tools[0].Function.Name; name != "list_events" {
		t.Fatalf("unexpected tool name %q", name)
	}

	conv.AddUser("what events are coming up?")
	conv.AddToolResult("call_1", "list_events", `{"count":2}`, false)
	if len(oc.params.Messages) != 3 {
		t.Fatalf("expected system+user+tool messages, got %d", len(oc.params.Messages))
	}
}

func TestAnthropicConversationCarriesTools(t *testing.T) {
	conv := newAnthropicProvider("claude-3-5-sonnet-20240620", "test-key").NewConversation(systemPrompt, testToolDefs())

	ac, ok := conv.(*anthropicConversation)
	if !ok {
		t.Fatalf("unexpected conversation type %T", conv)
	}
	if len(ac.params.Tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(ac.params.Tools))
	}
	tool := ac.params.Tools[0].OfTool
	if tool == nil || tool.Name != "list_events" {
		t.Fatalf("unexpected tool %+v", ac.params.Tools[0])
	}
	if got := tool.InputSchema.Required; len(got) != 1 || got[0] != "status" {
		t.Fatalf("unexpected required fields %v", got)
	}
}

func TestAnthropicParallelToolResultsShareOneUserMessage(t *testing.T) {
	conv := newAnthropicProvider("claude-3-5-sonnet-20240620", "test-key").NewConversation(systemPrompt, nil)
	ac := conv.(*anthropicConversation)
	conv.AddUser("compare the two events")
	baseline := len(ac.params.Messages)

	conv.AddToolResult("toolu_1", "get_event", `{"id":"evt_001"}`, false)
	conv.AddToolResult("toolu_2", "get_event", `{"id":"evt_002"}`, false)

	if len(ac.params.Messages) != baseline {
		t.Fatalf("tool results appended before flush: %d messages", len(ac.params.Messages))
	}

	ac.flushToolResults()

	if len(ac.params.Messages) != baseline+1 {
		t.Fatalf("expected one user message for both results, got %d extra", len(ac.params.Messages)-baseline)
	}
	blocks := ac.params.Messages[baseline].Content
	if len(blocks) != 2 {
		t.Fatalf("expected 2 tool_result blocks in one message, got %d", len(blocks))
	}
	for i, want := range []string{"toolu_1", "toolu_2"} {
		result := blocks[i].OfToolResult
		if result == nil || result.ToolUseID != want {
			t.Fatalf("block %d: expected tool_result for %s, got %+v", i, want, blocks[i])
		}
	}

	// A second flush must not duplicate the message.
	ac.flushToolResults()
	if len(ac.params.Messages) != baseline+1 {
		t.Fatalf("flush not idempotent: %d messages", len(ac.params.Messages))
	}
}
