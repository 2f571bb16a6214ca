package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Agent    AgentConfig    `mapstructure:"agent"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	// APIToken is the process-wide bearer secret every authenticated
	// route is checked against.
	APIToken string `mapstructure:"api_token"`
}

// DatabaseConfig selects the store implementation once at startup.
// Driver "fixture" runs without a database and serves seeded sample data.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

func (c DatabaseConfig) IsFixture() bool {
	return strings.EqualFold(strings.TrimSpace(c.Driver), "fixture")
}

type AgentConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	ConfigFile string `mapstructure:"config_file"`
	ServerURL  string `mapstructure:"server_url"`
	MaxSteps   int    `mapstructure:"max_steps"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CAE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.HTTP.APIToken == "" {
		return Config{}, errors.New("http.api_token is required")
	}
	if !cfg.Database.IsFixture() && cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required for non-fixture drivers")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("http_addr", cfg.HTTP.Addr),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "car-audio-events")
	v.SetDefault("app.env", "local")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.api_token", "car-audio-events-mcp-token")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".data/car_audio_events.sqlite")
	v.SetDefault("agent.provider", "openai")
	v.SetDefault("agent.server_url", "http://localhost:8000/mcp")
	v.SetDefault("agent.max_steps", 30)
}
