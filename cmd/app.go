package cmd

import (
	"github.com/urfave/cli/v2"
)

// NewApp returns the docprompt CLI application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "docprompt",
		Usage:   "Build documentation-comment prompts for a selection of source code",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE` (default: ./docprompt.toml, then $HOME/.docprompt.toml)",
			},
		},
		Commands: []*cli.Command{
			GenerateCommand(),
			RecipesCommand(),
			ConfigCommand(),
		},
	}
}
