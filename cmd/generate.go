package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/docprompt/internal/codebase"
	"github.com/docprompt/internal/config"
	"github.com/docprompt/internal/editor"
	"github.com/docprompt/internal/logging"
	"github.com/docprompt/internal/prompts"
	"github.com/docprompt/internal/transcript"
	"github.com/docprompt/internal/truncation"
)

// Output formats accepted by generate --format.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatText     = "text"
	FormatMessages = "messages"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Build the interaction a recipe would send for a file or a range of its lines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "recipe",
				Aliases: []string{"r"},
				Usage:   "Recipe to run",
				Value:   string(prompts.GenerateDocstringID),
			},
			&cli.IntFlag{
				Name:    "start-line",
				Aliases: []string{"s"},
				Usage:   "First selected line (1-based); omit to select the whole file",
			},
			&cli.IntFlag{
				Name:    "end-line",
				Aliases: []string{"e"},
				Usage:   "Last selected line (inclusive); defaults to the end of the file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, yaml, text or messages",
				Value:   FormatJSON,
			},
			&cli.StringFlag{
				Name:  "tokenizer",
				Usage: "Override the tokenizer used for budgets (chars or tiktoken)",
			},
			&cli.BoolFlag{
				Name:  "no-context",
				Usage: "Do not search the codebase for context messages",
			},
			&cli.StringFlag{
				Name:  "context-root",
				Usage: "Override the directory searched for codebase context",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging for this command",
			},
		},
		ArgsUsage: "FILE",
		Action:    runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: FILE")
	}
	path := c.Args().Get(0)

	format := strings.ToLower(c.String("format"))
	switch format {
	case FormatJSON, FormatYAML, FormatText, FormatMessages:
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if override := c.String("tokenizer"); override != "" {
		cfg.General.Tokenizer = override
	}
	if override := c.String("context-root"); override != "" {
		cfg.Context.Root = override
	}
	if c.Bool("no-context") {
		cfg.Context.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.General.LogLevel
	if c.Bool("verbose") {
		level = "debug"
	}
	if err := logging.Setup(level, cfg.General.Pretty, c.App.ErrWriter); err != nil {
		return err
	}

	recipe, err := prompts.GetRecipe(prompts.RecipeID(c.String("recipe")))
	if err != nil {
		return err
	}

	lines := editor.LineRange{Start: c.Int("start-line"), End: c.Int("end-line")}
	rc, err := newRecipeContext(cfg, path, lines, c.App.ErrWriter)
	if err != nil {
		return err
	}

	interaction := recipe.GetInteraction(context.Background(), "", rc)
	if interaction == nil {
		// The recipe already warned through the editor.
		return nil
	}

	logging.LogPrompt(interaction.Source, "text", interaction.HumanMessage.Text)
	logging.LogPrompt(interaction.Source, "assistant_prefix", interaction.AssistantMessage.Prefix)

	return writeInteraction(c.App.Writer, format, interaction)
}

func newRecipeContext(cfg *config.Config, path string, lines editor.LineRange, warnings io.Writer) (prompts.RecipeContext, error) {
	truncator, err := truncation.New(cfg.General.Tokenizer)
	if err != nil {
		return prompts.RecipeContext{}, err
	}

	ed, err := editor.NewFileEditor(path, lines,
		editor.WithRepository(cfg.Context.RepoName, cfg.Context.Revision),
		editor.WithWarningWriter(warnings),
	)
	if err != nil {
		return prompts.RecipeContext{}, err
	}

	var codebaseContext codebase.Context = codebase.Noop{}
	if cfg.Context.Enabled {
		local, err := codebase.NewLocal(codebase.LocalConfig{
			Root:          cfg.Context.Root,
			RepoName:      cfg.Context.RepoName,
			Revision:      cfg.Context.Revision,
			MaxFileTokens: cfg.Context.MaxFileTokens,
			Exclude:       path,
		}, truncator)
		if err != nil {
			return prompts.RecipeContext{}, fmt.Errorf("failed to set up codebase context: %w", err)
		}
		codebaseContext = local
	}

	log.Debug().
		Str("file", path).
		Int("start_line", lines.Start).
		Int("end_line", lines.End).
		Str("tokenizer", cfg.General.Tokenizer).
		Bool("context", cfg.Context.Enabled).
		Msg("generate: recipe context ready")

	budgets := cfg.Budgets
	return prompts.RecipeContext{
		Editor:          ed,
		CodebaseContext: codebaseContext,
		Truncator:       truncator,
		Budgets:         &budgets,
		Search: &codebase.SearchOptions{
			NumCodeResults: cfg.Context.NumCodeResults,
			NumTextResults: cfg.Context.NumTextResults,
		},
	}, nil
}

func writeInteraction(w io.Writer, format string, interaction *transcript.Interaction) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(interaction); err != nil {
			return fmt.Errorf("failed to encode interaction: %w", err)
		}
		return enc.Close()
	case FormatText:
		return writeText(w, interaction)
	case FormatMessages:
		return writeJSON(w, interaction.ToLLMMessages())
	default:
		return writeJSON(w, interaction)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode interaction: %w", err)
	}
	return nil
}

func writeText(w io.Writer, interaction *transcript.Interaction) error {
	var b strings.Builder
	for _, m := range interaction.ToChat() {
		b.WriteString(fmt.Sprintf("=== %s ===\n", strings.ToUpper(string(m.Speaker))))
		b.WriteString(m.Text)
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
