package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type BackendConfig struct {
	BaseURL     string `toml:"base_url"`
	PollSeconds int    `toml:"poll_seconds"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type CanvasConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Backend  BackendConfig  `toml:"backend"`
	LLM      LLMConfig      `toml:"llm"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Canvas   CanvasConfig   `toml:"canvas"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:8080", PollSeconds: 3},
		Canvas:  CanvasConfig{BaseURL: "https://canvas.instructure.com/api/v1"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	override(&c.Server.Port, "PORT")
	override(&c.Backend.BaseURL, "BACKEND_URL")
	override(&c.LLM.Provider, "LLM_PROVIDER")
	override(&c.LLM.Model, "LLM_MODEL")
	override(&c.LLM.APIKey, "LLM_API_KEY")
	override(&c.LLM.BaseURL, "LLM_BASE_URL")
	override(&c.Memgraph.URI, "MEMGRAPH_URI")
	override(&c.Memgraph.User, "MEMGRAPH_USER")
	override(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	override(&c.Canvas.BaseURL, "CANVAS_BASE_URL")
	override(&c.Canvas.Token, "CANVAS_TOKEN")
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
