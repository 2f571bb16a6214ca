package agent

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jryan2014/car-audio-events/internal/errs"
)

type openaiProvider struct {
	client openai.Client
	model  string
}

var _ llmProvider = (*openaiProvider)(nil)

// newOpenAIProvider builds the OpenAI backend. With an empty apiKey the
// SDK falls back to OPENAI_API_KEY from the environment.
func newOpenAIProvider(model, apiKey string) *openaiProvider {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &openaiProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (p *openaiProvider) NewConversation(systemPrompt string, tools []ToolDef) conversation {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
		},
	}

	for _, tool := range tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(tool.InputSchema),
			},
		})
	}

	return &openaiConversation{client: p.client, params: params}
}

type openaiConversation struct {
	client openai.Client
	params openai.ChatCompletionNewParams
}

func (c *openaiConversation) AddUser(text string) {
	c.params.Messages = append(c.params.Messages, openai.UserMessage(text))
}

func (c *openaiConversation) AddToolResult(callID, _ string, content string, _ bool) {
	c.params.Messages = append(c.params.Messages, openai.ToolMessage(content, callID))
}

func (c *openaiConversation) Step(ctx context.Context, emit func(string)) (string, []toolCall, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params)

	var acc openai.ChatCompletionAccumulator
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if emit != nil && len(chunk.Choices) > 0 {
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				emit(delta)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", nil, errs.Wrap(err, "stream chat completion")
	}
	if len(acc.Choices) == 0 {
		return "", nil, errors.New("model returned no choices")
	}

	msg := acc.Choices[0].Message
	c.params.Messages = append(c.params.Messages, msg.ToParam())

	calls := make([]toolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return "", nil, errs.Wrapf(err, "decode arguments for tool %q", tc.Function.Name)
			}
		}
		calls = append(calls, toolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}

	return msg.Content, calls, nil
}
