package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jryan2014/car-audio-events/internal/errs"
)

// ToolDef is a provider-neutral tool description handed to the LLM.
type ToolDef struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// toolSource abstracts the MCP client side so the run loop can be
// tested without a server.
type toolSource interface {
	ListTools(ctx context.Context) ([]ToolDef, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// mcpToolSource holds one session per configured server and routes tool
// calls to the session that advertised the tool.
type mcpToolSource struct {
	sessions map[string]*mcp.ClientSession
	toolHome map[string]string
}

var _ toolSource = (*mcpToolSource)(nil)

type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func connectSessions(ctx context.Context, cfg Config) (*mcpToolSource, error) {
	src := &mcpToolSource{
		sessions: make(map[string]*mcp.ClientSession, len(cfg.Servers)),
		toolHome: make(map[string]string),
	}

	for name, server := range cfg.Servers {
		client := mcp.NewClient(&mcp.Implementation{
			Name:    "car-audio-events-agent",
			Version: "1.0.0",
		}, nil)

		transport := &mcp.StreamableClientTransport{
			Endpoint: server.URL,
			HTTPClient: &http.Client{
				Transport: headerTransport{headers: server.Headers},
			},
		}

		session, err := client.Connect(ctx, transport, nil)
		if err != nil {
			_ = src.Close()
			return nil, errs.WithKind(errs.Wrapf(err, "connect mcp server %q", name), errs.KindUpstream)
		}
		src.sessions[name] = session
	}

	return src, nil
}

func (s *mcpToolSource) ListTools(ctx context.Context) ([]ToolDef, error) {
	var defs []ToolDef
	for name, session := range s.sessions {
		res, err := session.ListTools(ctx, nil)
		if err != nil {
			return nil, errs.WithKind(errs.Wrapf(err, "list tools on %q", name), errs.KindUpstream)
		}

		for _, tool := range res.Tools {
			schema, err := schemaToMap(tool.InputSchema)
			if err != nil {
				return nil, errs.Wrapf(err, "decode schema for tool %q", tool.Name)
			}
			defs = append(defs, ToolDef{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: schema,
			})
			s.toolHome[tool.Name] = name
		}
	}
	return defs, nil
}

func (s *mcpToolSource) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	home, ok := s.toolHome[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	res, err := s.sessions[home].CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", errs.WithKind(errs.Wrapf(err, "call tool %q", name), errs.KindUpstream)
	}

	text := contentText(res.Content)
	if res.IsError {
		return "", fmt.Errorf("tool %q failed: %s", name, text)
	}
	return text, nil
}

// Close tears down every open session. It does not interrupt an
// in-flight run.
func (s *mcpToolSource) Close() error {
	var errsJoined error
	for name, session := range s.sessions {
		if err := session.Close(); err != nil {
			errsJoined = errors.Join(errsJoined, fmt.Errorf("close session %q: %w", name, err))
		}
	}
	return errsJoined
}

func schemaToMap(schema any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func contentText(blocks []mcp.Content) string {
	var sb strings.Builder
	for _, block := range blocks {
		if text, ok := block.(*mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}
