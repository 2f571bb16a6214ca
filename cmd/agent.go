package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jryan2014/car-audio-events/internal/agent"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/config"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

// agentCmd groups the LLM agent subcommands. They talk to a running
// server over its /mcp endpoint and need no database of their own.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the LLM agent against the platform API",
}

var agentRunCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Execute one agent query and print the final answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		ag, err := newAgent(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := ag.Close(); err != nil {
				logging.Error(ctx, "agent close failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		answer, err := ag.Run(ctx, strings.Join(args, " "), 0)
		if err != nil {
			return errs.Wrap(err, "run agent")
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), answer); err != nil {
			return errs.Wrap(err, "write agent output")
		}
		return nil
	},
}

var agentStreamCmd = &cobra.Command{
	Use:   "stream [query]",
	Short: "Execute one agent query, streaming output as it is produced",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		ag, err := newAgent(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := ag.Close(); err != nil {
				logging.Error(ctx, "agent close failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		out := cmd.OutOrStdout()
		for chunk := range ag.Stream(ctx, strings.Join(args, " ")) {
			switch chunk.Kind {
			case agent.ChunkText:
				fmt.Fprint(out, chunk.Text)
			case agent.ChunkToolCall:
				fmt.Fprintf(out, "\n[tool] %s\n", chunk.Text)
			case agent.ChunkFinal:
				fmt.Fprintf(out, "\n\nFinal Result:\n%s\n", chunk.Text)
			case agent.ChunkError:
				return errs.Wrap(chunk.Err, "stream agent")
			}
		}
		return nil
	},
}

// newAgent builds agent options from the application config plus the
// command flags; flags win.
func newAgent(cmd *cobra.Command) (*agent.Agent, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, cfgFile)
	if err != nil {
		return nil, errs.Wrap(err, "load config")
	}

	opts := agent.Options{
		Provider:   cfg.Agent.Provider,
		Model:      cfg.Agent.Model,
		ConfigFile: cfg.Agent.ConfigFile,
		ServerURL:  cfg.Agent.ServerURL,
		APIToken:   cfg.HTTP.APIToken,
		MaxSteps:   cfg.Agent.MaxSteps,
	}

	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		opts.Profile = profile
		// Profile defaults take over unless the flags re-specify.
		opts.Provider = ""
		opts.Model = ""
	}
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		opts.Provider = provider
		opts.Model = ""
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		opts.Model = model
	}
	if agentConfig, _ := cmd.Flags().GetString("agent-config"); agentConfig != "" {
		opts.ConfigFile = agentConfig
	}
	if maxSteps, _ := cmd.Flags().GetInt("max-steps"); maxSteps > 0 {
		opts.MaxSteps = maxSteps
	}

	ag, err := agent.New(ctx, opts)
	if err != nil {
		return nil, errs.Wrap(err, "initialize agent")
	}
	return ag, nil
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.AddCommand(agentRunCmd)
	agentCmd.AddCommand(agentStreamCmd)

	for _, sub := range []*cobra.Command{agentRunCmd, agentStreamCmd} {
		sub.Flags().String("profile", "", "Agent profile: event-management, analytics or support")
		sub.Flags().String("provider", "", "LLM provider: openai or anthropic")
		sub.Flags().String("model", "", "Model name override")
		sub.Flags().String("agent-config", "", "TOML file listing MCP servers")
		sub.Flags().Int("max-steps", 0, "Maximum tool-loop steps")
	}
}
