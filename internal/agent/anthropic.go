package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jryan2014/car-audio-events/internal/errs"
)

const anthropicMaxTokens = 4096

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

var _ llmProvider = (*anthropicProvider)(nil)

// newAnthropicProvider builds the Anthropic backend. With an empty
// apiKey the SDK falls back to ANTHROPIC_API_KEY from the environment.
func newAnthropicProvider(model, apiKey string) *anthropicProvider {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (p *anthropicProvider) NewConversation(systemPrompt string, tools []ToolDef) conversation {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
	}

	for _, tool := range tools {
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: toolInputSchema(tool.InputSchema),
			},
		})
	}

	return &anthropicConversation{client: p.client, params: params}
}

func toolInputSchema(schema map[string]any) anthropic.ToolInputSchemaParam {
	var out anthropic.ToolInputSchemaParam
	if props, ok := schema["properties"]; ok {
		out.Properties = props
	}
	if rawRequired, ok := schema["required"].([]any); ok {
		required := make([]string, 0, len(rawRequired))
		for _, item := range rawRequired {
			if name, ok := item.(string); ok {
				required = append(required, name)
			}
		}
		out.Required = required
	}
	return out
}

type anthropicConversation struct {
	client anthropic.Client
	params anthropic.MessageNewParams

	// pendingResults buffers tool_result blocks until the next Step:
	// the API requires every tool_use of an assistant turn answered in
	// the single user message that follows it, so parallel tool calls
	// must flush as one message.
	pendingResults []anthropic.ContentBlockParamUnion
}

func (c *anthropicConversation) AddUser(text string) {
	c.params.Messages = append(c.params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

func (c *anthropicConversation) AddToolResult(callID, _ string, content string, isError bool) {
	c.pendingResults = append(c.pendingResults, anthropic.NewToolResultBlock(callID, content, isError))
}

func (c *anthropicConversation) flushToolResults() {
	if len(c.pendingResults) == 0 {
		return
	}
	c.params.Messages = append(c.params.Messages, anthropic.NewUserMessage(c.pendingResults...))
	c.pendingResults = nil
}

func (c *anthropicConversation) Step(ctx context.Context, emit func(string)) (string, []toolCall, error) {
	c.flushToolResults()

	stream := c.client.Messages.NewStreaming(ctx, c.params)

	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return "", nil, errs.Wrap(err, "accumulate stream event")
		}

		if emit != nil {
			if deltaEvent, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
				if delta, ok := deltaEvent.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
					emit(delta.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", nil, errs.Wrap(err, "stream message")
	}

	c.params.Messages = append(c.params.Messages, msg.ToParam())

	var text strings.Builder
	var calls []toolCall
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			var args map[string]any
			if len(b.Input) > 0 {
				if err := json.Unmarshal(b.Input, &args); err != nil {
					return "", nil, errs.Wrapf(err, "decode arguments for tool %q", b.Name)
				}
			}
			calls = append(calls, toolCall{ID: b.ID, Name: b.Name, Args: args})
		}
	}

	return text.String(), calls, nil
}
