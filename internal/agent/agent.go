// Package agent wraps an LLM provider and the platform's MCP tool
// surface into a task executor. It holds no business logic: it selects
// a provider, forwards a text query and routes the model's tool calls
// to the MCP sessions.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

const defaultMaxSteps = 30

const systemPrompt = "You are an assistant for the Car Audio Events platform. " +
	"Use the available tools to manage events, registrations, payments, analytics " +
	"and support tickets. Answer with the final result once the task is done."

// ChunkKind discriminates streamed output.
type ChunkKind string

const (
	// ChunkText is an incremental piece of model output.
	ChunkText ChunkKind = "text"
	// ChunkToolCall announces a tool invocation.
	ChunkToolCall ChunkKind = "tool_call"
	// ChunkFinal carries the complete final answer and closes the stream.
	ChunkFinal ChunkKind = "final"
	// ChunkError carries a terminal failure and closes the stream.
	ChunkError ChunkKind = "error"
)

type Chunk struct {
	Kind ChunkKind
	Text string
	Err  error
}

// Options configure New. Profile picks provider/model defaults;
// explicit Provider and Model win. ConfigFile points at a TOML server
// list; without it the agent uses the default single-endpoint config
// built from ServerURL and APIToken.
type Options struct {
	Profile    string
	Provider   string
	Model      string
	ConfigFile string
	ServerURL  string
	APIToken   string
	APIKey     string
	MaxSteps   int
}

type Agent struct {
	provider llmProvider
	tools    toolSource
	maxSteps int
}

// New resolves the provider and connects the configured MCP sessions.
func New(ctx context.Context, opts Options) (*Agent, error) {
	providerName, model, err := profileDefaults(opts.Profile)
	if err != nil {
		return nil, err
	}
	if opts.Provider != "" {
		providerName = opts.Provider
		model, err = defaultModelFor(providerName)
		if err != nil {
			return nil, err
		}
	}
	if opts.Model != "" {
		model = opts.Model
	}

	var provider llmProvider
	switch providerName {
	case "openai":
		provider = newOpenAIProvider(model, opts.APIKey)
	case "anthropic":
		provider = newAnthropicProvider(model, opts.APIKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", providerName)
	}

	cfg := DefaultConfig(opts.ServerURL, opts.APIToken)
	if opts.ConfigFile != "" {
		cfg, err = LoadConfig(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	tools, err := connectSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	logging.Info(ctx, "agent initialized",
		slog.String("provider", providerName),
		slog.String("model", model),
		slog.Int("max_steps", maxSteps),
	)

	return &Agent{
		provider: provider,
		tools:    tools,
		maxSteps: maxSteps,
	}, nil
}

// Run executes the query to completion and returns the final answer.
// maxSteps overrides the configured bound when positive.
func (a *Agent) Run(ctx context.Context, query string, maxSteps int) (string, error) {
	return a.run(ctx, query, maxSteps, nil)
}

// Stream executes the query and emits chunks as the model produces
// them, ending with a final (or error) chunk. The channel is closed
// when the run finishes; it has a single consumer.
func (a *Agent) Stream(ctx context.Context, query string) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)

		emit := func(c Chunk) {
			select {
			case out <- c:
			case <-ctx.Done():
			}
		}

		final, err := a.run(ctx, query, 0, emit)
		if err != nil {
			emit(Chunk{Kind: ChunkError, Err: err})
			return
		}
		emit(Chunk{Kind: ChunkFinal, Text: final})
	}()
	return out
}

// Close tears down the MCP sessions. It does not interrupt an
// in-flight run.
func (a *Agent) Close() error {
	return a.tools.Close()
}

func (a *Agent) run(ctx context.Context, query string, maxSteps int, emit func(Chunk)) (string, error) {
	if maxSteps <= 0 {
		maxSteps = a.maxSteps
	}

	defs, err := a.tools.ListTools(ctx)
	if err != nil {
		return "", err
	}

	conv := a.provider.NewConversation(systemPrompt, defs)
	conv.AddUser(query)

	emitText := func(text string) {
		if emit != nil {
			emit(Chunk{Kind: ChunkText, Text: text})
		}
	}

	for step := 0; step < maxSteps; step++ {
		text, calls, err := conv.Step(ctx, emitText)
		if err != nil {
			return "", errs.WithKind(errs.Wrap(err, "model step"), errs.KindUpstream)
		}

		if len(calls) == 0 {
			logging.Info(ctx, "agent run completed", slog.Int("steps", step+1))
			return text, nil
		}

		for _, call := range calls {
			if emit != nil {
				emit(Chunk{Kind: ChunkToolCall, Text: call.Name})
			}
			logging.Info(ctx, "agent calling tool", slog.String("tool", call.Name))

			result, err := a.tools.CallTool(ctx, call.Name, call.Args)
			if err != nil {
				// Hand the failure back to the model; it may recover
				// or report it in the final answer.
				conv.AddToolResult(call.ID, call.Name, err.Error(), true)
				continue
			}
			conv.AddToolResult(call.ID, call.Name, result, false)
		}
	}

	return "", errors.New("agent exceeded max steps without a final answer")
}
