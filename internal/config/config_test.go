package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9090"

[backend]
base_url = "http://backend:8080"
poll_seconds = 5

[llm]
provider = "openai"
model = "gpt-4o-mini"
api_key = "sk-test"

[memgraph]
uri = "bolt://memgraph:7687"
user = "mg"
password = "pw"

[canvas]
base_url = "https://canvas.example/api/v1"
token = "canvas-token"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://backend:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 5, cfg.Backend.PollSeconds)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "bolt://memgraph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "canvas-token", cfg.Canvas.Token)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "ollama"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Backend.PollSeconds)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Empty(t, cfg.Memgraph.URI)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_API_KEY", "sk-env")
	t.Setenv("MEMGRAPH_URI", "bolt://localhost:7687")
	t.Setenv("CANVAS_TOKEN", "")

	cfg := Default()
	cfg.Canvas.Token = "from-file"
	cfg.ApplyEnv()

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.Equal(t, "bolt://localhost:7687", cfg.Memgraph.URI)
	// Empty environment values do not override file values.
	assert.Equal(t, "from-file", cfg.Canvas.Token)
}
