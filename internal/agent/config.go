package agent

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config names the MCP servers the agent connects to. It comes from a
// TOML file or, when none is given, from the default single-endpoint
// configuration pointing at the local platform API.
type Config struct {
	Servers map[string]ServerConfig `toml:"servers"`
}

type ServerConfig struct {
	URL     string            `toml:"url"`
	Headers map[string]string `toml:"headers"`
}

func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read agent config %q: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse agent config %q: %w", path, err)
	}
	if len(cfg.Servers) == 0 {
		return Config{}, errors.New("agent config names no servers")
	}

	for name, server := range cfg.Servers {
		if server.URL == "" {
			return Config{}, fmt.Errorf("server %q has no url", name)
		}
	}
	return cfg, nil
}

// DefaultConfig points the agent at the platform's own /mcp mount.
func DefaultConfig(serverURL, apiToken string) Config {
	return Config{
		Servers: map[string]ServerConfig{
			"car-audio-api": {
				URL: serverURL,
				Headers: map[string]string{
					"Authorization": "Bearer " + apiToken,
				},
			},
		},
	}
}
