package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadDefaults loads with no explicit path and an empty home directory.
func loadDefaults(t *testing.T) *Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, "chars", cfg.General.Tokenizer)
	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, DefaultBudgets(), cfg.Budgets)
	assert.True(t, cfg.Context.Enabled)
	assert.Equal(t, ".", cfg.Context.Root)
	assert.Equal(t, 4, cfg.Context.NumCodeResults)
	assert.Equal(t, 0, cfg.Context.NumTextResults)
	assert.Equal(t, 500, cfg.Context.MaxFileTokens)
	require.NoError(t, Validate(cfg))
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docprompt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[general]
tokenizer = "tiktoken"

[budgets]
max_input_tokens = 1000
max_surrounding_tokens = 250

[context]
enabled = false
`), 0o644))

	t.Setenv("DOCPROMPT_BUDGETS__MAX_SURROUNDING_TOKENS", "300")
	t.Setenv("DOCPROMPT_GENERAL__LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "tiktoken", cfg.General.Tokenizer)
	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, 1000, cfg.Budgets.MaxInputTokens)
	assert.Equal(t, 300, cfg.Budgets.MaxSurroundingTokens)
	assert.False(t, cfg.Context.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestLoadConfig_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".docprompt.toml"), []byte("[budgets]\nmax_input_tokens = 1200\n"), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Budgets.MaxInputTokens)
	assert.Equal(t, DefaultMaxSurroundingTokens, cfg.Budgets.MaxSurroundingTokens)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\ntokenizer = "), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docprompt.toml")
	require.NoError(t, InitConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	assert.Equal(t, DefaultBudgets(), cfg.Budgets)

	err = InitConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestValidate(t *testing.T) {

	tcs := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "UnknownTokenizer", mutate: func(c *Config) { c.General.Tokenizer = "bpe" }, errMsg: "unknown tokenizer"},
		{name: "ZeroInput", mutate: func(c *Config) { c.Budgets.MaxInputTokens = 0 }, errMsg: "max_input_tokens"},
		{name: "NegativeSurrounding", mutate: func(c *Config) { c.Budgets.MaxSurroundingTokens = -1 }, errMsg: "max_surrounding_tokens"},
		{name: "SurroundingNotSmaller", mutate: func(c *Config) { c.Budgets.MaxSurroundingTokens = c.Budgets.MaxInputTokens }, errMsg: "must be smaller"},
		{name: "EmptyRoot", mutate: func(c *Config) { c.Context.Root = "" }, errMsg: "context root"},
		{name: "NegativeResults", mutate: func(c *Config) { c.Context.NumCodeResults = -2 }, errMsg: "negative"},
		{name: "ZeroFileTokens", mutate: func(c *Config) { c.Context.MaxFileTokens = 0 }, errMsg: "max_file_tokens"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			tc.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("DisabledContextSkipsChecks", func(t *testing.T) {
		cfg := loadDefaults(t)
		cfg.Context.Enabled = false
		cfg.Context.Root = ""
		assert.NoError(t, Validate(cfg))
	})
}
