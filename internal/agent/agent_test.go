package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// scriptedConversation replays a fixed sequence of model turns.
type scriptedTurn struct {
	text  string
	calls []toolCall
	err   error
}

type scriptedConversation struct {
	turns   []scriptedTurn
	step    int
	results []string
}

func (c *scriptedConversation) AddUser(string) {}

func (c *scriptedConversation) AddToolResult(_, _ string, content string, _ bool) {
	c.results = append(c.results, content)
}

func (c *scriptedConversation) Step(_ context.Context, emit func(string)) (string, []toolCall, error) {
	if c.step >= len(c.turns) {
		return "", nil, errors.New("script exhausted")
	}
	turn := c.turns[c.step]
	c.step++

	if emit != nil && turn.text != "" {
		emit(turn.text)
	}
	return turn.text, turn.calls, turn.err
}

type scriptedProvider struct {
	conv *scriptedConversation
}

func (p *scriptedProvider) NewConversation(string, []ToolDef) conversation {
	return p.conv
}

type fakeTools struct {
	defs    []ToolDef
	calls   []string
	result  string
	callErr error
	closed  bool
}

func (f *fakeTools) ListTools(context.Context) ([]ToolDef, error) {
	return f.defs, nil
}

func (f *fakeTools) CallTool(_ context.Context, name string, _ map[string]any) (string, error) {
	f.calls = append(f.calls, name)
	if f.callErr != nil {
		return "", f.callErr
	}
	return f.result, nil
}

func (f *fakeTools) Close() error {
	f.closed = true
	return nil
}

func newTestAgent(conv *scriptedConversation, tools *fakeTools) *Agent {
	return &Agent{
		provider: &scriptedProvider{conv: conv},
		tools:    tools,
		maxSteps: 5,
	}
}

func TestRunExecutesToolLoop(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{calls: []toolCall{{ID: "call_1", Name: "list_events", Args: map[string]any{"status": "published"}}}},
		{text: "There are two published events."},
	}}
	tools := &fakeTools{result: `{"count":2}`}

	final, err := newTestAgent(conv, tools).Run(context.Background(), "what events are coming up?", 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if final != "There are two published events." {
		t.Fatalf("unexpected final answer %q", final)
	}
	if len(tools.calls) != 1 || tools.calls[0] != "list_events" {
		t.Fatalf("unexpected tool calls %v", tools.calls)
	}
	if len(conv.results) != 1 || conv.results[0] != `{"count":2}` {
		t.Fatalf("tool result not fed back: %v", conv.results)
	}
}

func TestRunFeedsToolErrorBackToModel(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{calls: []toolCall{{ID: "call_1", Name: "get_event"}}},
		{text: "That event does not exist."},
	}}
	tools := &fakeTools{callErr: errors.New("event not found")}

	final, err := newTestAgent(conv, tools).Run(context.Background(), "describe evt_404", 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if final == "" {
		t.Fatal("expected a final answer despite tool failure")
	}
	if len(conv.results) != 1 || !strings.Contains(conv.results[0], "not found") {
		t.Fatalf("error not handed back to model: %v", conv.results)
	}
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	// Every turn requests another tool call; the loop must bail out.
	turns := make([]scriptedTurn, 10)
	for i := range turns {
		turns[i] = scriptedTurn{calls: []toolCall{{ID: "c", Name: "list_events"}}}
	}
	conv := &scriptedConversation{turns: turns}
	tools := &fakeTools{result: "{}"}

	_, err := newTestAgent(conv, tools).Run(context.Background(), "loop forever", 2)
	if err == nil {
		t.Fatal("expected max-steps error")
	}
	if len(tools.calls) != 2 {
		t.Fatalf("expected exactly 2 steps, got %d", len(tools.calls))
	}
}

func TestStreamEmitsTextToolAndFinalChunks(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{calls: []toolCall{{ID: "call_1", Name: "get_analytics"}}},
		{text: "Revenue is $15,600."},
	}}
	tools := &fakeTools{result: `{"revenue":{"total":15600}}`}

	var kinds []ChunkKind
	var final string
	for chunk := range newTestAgent(conv, tools).Stream(context.Background(), "revenue?") {
		kinds = append(kinds, chunk.Kind)
		if chunk.Kind == ChunkFinal {
			final = chunk.Text
		}
		if chunk.Kind == ChunkError {
			t.Fatalf("unexpected error chunk: %v", chunk.Err)
		}
	}

	if final != "Revenue is $15,600." {
		t.Fatalf("unexpected final chunk %q", final)
	}

	var sawTool bool
	for _, kind := range kinds {
		if kind == ChunkToolCall {
			sawTool = true
		}
	}
	if !sawTool {
		t.Fatalf("expected a tool_call chunk, got %v", kinds)
	}
	if kinds[len(kinds)-1] != ChunkFinal {
		t.Fatalf("stream must end with the final chunk, got %v", kinds)
	}
}

func TestCloseTearsDownSessions(t *testing.T) {
	tools := &fakeTools{}
	agent := newTestAgent(&scriptedConversation{}, tools)

	if err := agent.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !tools.closed {
		t.Fatal("sessions not closed")
	}
}

func TestProfileDefaults(t *testing.T) {
	for _, tt := range []struct {
		profile  string
		provider string
		model    string
	}{
		{"", "openai", "gpt-4o"},
		{ProfileEventManagement, "openai", "gpt-4o"},
		{ProfileAnalytics, "openai", "gpt-4o"},
		{ProfileSupport, "anthropic", "claude-3-5-sonnet-20240620"},
	} {
		provider, model, err := profileDefaults(tt.profile)
		if err != nil {
			t.Fatalf("profile %q: %v", tt.profile, err)
		}
		if provider != tt.provider || model != tt.model {
			t.Fatalf("profile %q: got %s/%s, want %s/%s", tt.profile, provider, model, tt.provider, tt.model)
		}
	}

	if _, _, err := profileDefaults("janitor"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestDefaultConfigPointsAtLocalServer(t *testing.T) {
	cfg := DefaultConfig("http://localhost:8000/mcp", "secret")

	server, ok := cfg.Servers["car-audio-api"]
	if !ok {
		t.Fatalf("missing default server: %v", cfg.Servers)
	}
	if server.URL != "http://localhost:8000/mcp" {
		t.Fatalf("unexpected url %q", server.URL)
	}
	if server.Headers["Authorization"] != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", server.Headers["Authorization"])
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.toml")
	body := `
[servers.car-audio-api]
url = "http://localhost:8000/mcp"

[servers.car-audio-api.headers]
Authorization = "Bearer tok"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Servers["car-audio-api"].URL != "http://localhost:8000/mcp" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigRejectsEmptyServers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for empty config")
	}
}
