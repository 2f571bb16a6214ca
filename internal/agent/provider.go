package agent

import "context"

// toolCall is one tool invocation requested by the model.
type toolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// conversation is one model-facing dialogue. Step runs a single model
// turn, streaming text through emit when it is non-nil, and reports any
// tool calls the model requested. Implementations append the assistant
// turn to their own history.
type conversation interface {
	AddUser(text string)
	AddToolResult(callID, toolName, content string, isError bool)
	Step(ctx context.Context, emit func(text string)) (text string, calls []toolCall, err error)
}

// llmProvider builds conversations for one of the two supported
// backends.
type llmProvider interface {
	NewConversation(systemPrompt string, tools []ToolDef) conversation
}
