package prompts

// Core model types for recipe prompts.

import (
	"context"

	"github.com/docprompt/internal/codebase"
	"github.com/docprompt/internal/config"
	"github.com/docprompt/internal/editor"
	"github.com/docprompt/internal/transcript"
	"github.com/docprompt/internal/truncation"
)

// RecipeID identifies a recipe and is recorded as the source of the
// interactions it produces.
type RecipeID string

// Recipe turns editor state into an interaction for the chat pipeline.
type Recipe interface {
	ID() RecipeID
	Title() string
	// GetInteraction returns nil when the recipe has nothing to work on; the
	// recipe has already told the user why.
	GetInteraction(ctx context.Context, humanChatInput string, rc RecipeContext) *transcript.Interaction
}

// RecipeContext bundles the collaborators a recipe reads from.
// Nil fields fall back to defaults (see withDefaults); a non-nil Budgets or
// Search is used as given, zero counts included.
type RecipeContext struct {
	Editor          editor.Editor
	CodebaseContext codebase.Context
	Truncator       truncation.Truncator
	Budgets         *config.Budgets
	Search          *codebase.SearchOptions
}

// DefaultSearchOptions is how much codebase context recipes ask for.
var DefaultSearchOptions = codebase.SearchOptions{NumCodeResults: 4, NumTextResults: 0}

func (rc RecipeContext) withDefaults() RecipeContext {
	if rc.CodebaseContext == nil {
		rc.CodebaseContext = codebase.Noop{}
	}
	if rc.Truncator == nil {
		rc.Truncator = truncation.CharEstimate{}
	}
	if rc.Budgets == nil {
		budgets := config.DefaultBudgets()
		rc.Budgets = &budgets
	}
	if rc.Search == nil {
		search := DefaultSearchOptions
		rc.Search = &search
	}
	return rc
}

// PromptBundle is everything a recipe renders for one request. AssistantPrefix
// and AssistantText are always identical.
type PromptBundle struct {
	Text            string                      `json:"text" yaml:"text"`
	DisplayText     string                      `json:"displayText" yaml:"displayText"`
	Source          RecipeID                    `json:"source" yaml:"source"`
	AssistantPrefix string                      `json:"assistantPrefix" yaml:"assistantPrefix"`
	AssistantText   string                      `json:"assistantText" yaml:"assistantText"`
	ContextMessages []transcript.ContextMessage `json:"contextMessages" yaml:"contextMessages"`
}

// InteractionArgs adapts the bundle to transcript.NewInteraction.
func (b *PromptBundle) InteractionArgs() transcript.InteractionArgs {
	return transcript.InteractionArgs{
		Text:            b.Text,
		DisplayText:     b.DisplayText,
		Source:          string(b.Source),
		AssistantPrefix: b.AssistantPrefix,
		AssistantText:   b.AssistantText,
		ContextMessages: b.ContextMessages,
	}
}
