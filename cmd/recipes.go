package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/docprompt/internal/prompts"
)

// RecipesCommand returns the recipes command
func RecipesCommand() *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "List available recipes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "templates",
				Usage: "Also print the prompt templates recipes render",
			},
		},
		Action: runRecipes,
	}
}

func runRecipes(c *cli.Context) error {
	w := c.App.Writer
	for _, r := range prompts.Recipes() {
		fmt.Fprintf(w, "%s\t%s\n", r.ID(), r.Title())
	}

	if c.Bool("templates") {
		for _, tpl := range prompts.PlaintextTemplates() {
			fmt.Fprintf(w, "\n--- %s ---\n", tpl.PromptKey)
			fmt.Fprintf(w, "vars: %s\n", strings.Join(placeholderNames(tpl.Body), ", "))
			fmt.Fprintf(w, "%s\n", tpl.Body)
		}
	}
	return nil
}

// placeholderNames lists each variable a template reads once, in order of first use.
func placeholderNames(body string) []string {
	var names []string
	seen := map[string]bool{}
	for _, ph := range prompts.ParsePlaceholders(body) {
		if seen[ph.Name] {
			continue
		}
		seen[ph.Name] = true
		names = append(names, ph.Name)
	}
	return names
}
