package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/docprompt/internal/truncation"
)

// EnvPrefix prefixes environment overrides, e.g. DOCPROMPT_BUDGETS__MAX_INPUT_TOKENS.
const EnvPrefix = "DOCPROMPT_"

// Default token budgets for recipe inputs. Surrounding text is supplementary
// so it gets the smaller share.
const (
	DefaultMaxInputTokens       = 2000
	DefaultMaxSurroundingTokens = 500
)

// Config represents the application configuration
type Config struct {
	General struct {
		Tokenizer string `koanf:"tokenizer"`
		LogLevel  string `koanf:"log_level"`
		Pretty    bool   `koanf:"pretty"`
	} `koanf:"general"`

	Budgets Budgets `koanf:"budgets"`

	Context struct {
		Enabled        bool   `koanf:"enabled"`
		Root           string `koanf:"root"`
		RepoName       string `koanf:"repo_name"`
		Revision       string `koanf:"revision"`
		NumCodeResults int    `koanf:"num_code_results"`
		NumTextResults int    `koanf:"num_text_results"`
		MaxFileTokens  int    `koanf:"max_file_tokens"`
	} `koanf:"context"`
}

// Budgets are the token limits applied to a selection before prompting.
type Budgets struct {
	MaxInputTokens       int `koanf:"max_input_tokens"`
	MaxSurroundingTokens int `koanf:"max_surrounding_tokens"`
}

// DefaultBudgets returns the built-in token budgets.
func DefaultBudgets() Budgets {
	return Budgets{
		MaxInputTokens:       DefaultMaxInputTokens,
		MaxSurroundingTokens: DefaultMaxSurroundingTokens,
	}
}

var defaults = map[string]interface{}{
	"general.tokenizer":              truncation.TokenizerChars,
	"general.log_level":              "info",
	"general.pretty":                 true,
	"budgets.max_input_tokens":       DefaultMaxInputTokens,
	"budgets.max_surrounding_tokens": DefaultMaxSurroundingTokens,
	"context.enabled":                true,
	"context.root":                   ".",
	"context.num_code_results":       4,
	"context.num_text_results":       0,
	"context.max_file_tokens":        500,
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./docprompt.toml", "$HOME/.docprompt.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// DOCPROMPT_SECTION__KEY maps to section.key; single underscores stay part of the key.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# docprompt configuration

[general]
# "chars" estimates 4 characters per token; "tiktoken" counts o200k tokens.
tokenizer = "chars"
log_level = "info"
pretty = true

[budgets]
max_input_tokens = 2000
max_surrounding_tokens = 500

[context]
enabled = true
root = "."
num_code_results = 4
num_text_results = 0
max_file_tokens = 500
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if _, err := truncation.New(config.General.Tokenizer); err != nil {
		return err
	}

	if err := config.Budgets.Validate(); err != nil {
		return err
	}

	if config.Context.Enabled {
		if config.Context.Root == "" {
			return fmt.Errorf("context root is required when context is enabled")
		}
		if config.Context.NumCodeResults < 0 || config.Context.NumTextResults < 0 {
			return fmt.Errorf("context result counts must not be negative")
		}
		if config.Context.MaxFileTokens <= 0 {
			return fmt.Errorf("context max_file_tokens must be positive")
		}
	}

	return nil
}

// Validate checks that both budgets are positive and that surrounding text
// gets less room than the selection.
func (b Budgets) Validate() error {
	if b.MaxInputTokens <= 0 {
		return fmt.Errorf("max_input_tokens must be positive, got %d", b.MaxInputTokens)
	}
	if b.MaxSurroundingTokens <= 0 {
		return fmt.Errorf("max_surrounding_tokens must be positive, got %d", b.MaxSurroundingTokens)
	}
	if b.MaxSurroundingTokens >= b.MaxInputTokens {
		return fmt.Errorf("max_surrounding_tokens (%d) must be smaller than max_input_tokens (%d)",
			b.MaxSurroundingTokens, b.MaxInputTokens)
	}
	return nil
}
