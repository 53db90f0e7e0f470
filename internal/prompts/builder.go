package prompts

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/docprompt/internal/languages"
	"github.com/docprompt/internal/transcript"
)

// GenerateDocstringID is the ID of the GenerateDocstring recipe.
const GenerateDocstringID RecipeID = "generate-docstring"

var docstringInstructions = map[languages.Language]string{
	languages.Java:   DocstringJavaInstructions,
	languages.Python: DocstringPythonInstructions,
}

// docStarts open a documentation comment; the seeded answer ends with one so
// the model continues inside the comment.
var docStarts = map[languages.Language]string{
	languages.Java:       "/*",
	languages.JavaScript: "/*",
	languages.TypeScript: "/*",
	languages.Python:     "\"\"\"\n",
	languages.Go:         "// ",
}

// AdditionalInstructions returns the documentation-style instructions for lang.
func AdditionalInstructions(lang languages.Language) string {
	if s, ok := docstringInstructions[lang]; ok {
		return s
	}
	return Render(DocstringGenericInstructions, map[string]string{"language": string(lang)})
}

// DocStart returns the token that opens a documentation comment in lang, or
// "" when lang has none on record.
func DocStart(lang languages.Language) string {
	return docStarts[lang]
}

// GenerateDocstring asks the model to document the selected code.
type GenerateDocstring struct{}

// ID implements Recipe.
func (GenerateDocstring) ID() RecipeID { return GenerateDocstringID }

// Title implements Recipe.
func (GenerateDocstring) Title() string { return "Generate Docstring" }

// GetInteraction implements Recipe.
func (r GenerateDocstring) GetInteraction(ctx context.Context, _ string, rc RecipeContext) *transcript.Interaction {
	bundle := BuildDocstringPrompt(ctx, r.ID(), rc)
	if bundle == nil {
		return nil
	}
	return transcript.NewInteraction(bundle.InteractionArgs())
}

// BuildDocstringPrompt renders the docstring request for the editor's current
// selection. It returns nil, after warning the user through the editor, when
// there is no selection.
func BuildDocstringPrompt(ctx context.Context, source RecipeID, rc RecipeContext) *PromptBundle {
	rc = rc.withDefaults()

	selection := rc.Editor.GetActiveTextEditorSelectionOrEntireFile(ctx)
	if selection == nil {
		rc.Editor.ShowWarningMessage(ctx, NoSelectionWarning)
		return nil
	}

	truncatedSelectedText := rc.Truncator.TruncateText(selection.SelectedText, rc.Budgets.MaxInputTokens)
	truncatedPrecedingText := rc.Truncator.TruncateTextStart(selection.PrecedingText, rc.Budgets.MaxSurroundingTokens)
	truncatedFollowingText := rc.Truncator.TruncateText(selection.FollowingText, rc.Budgets.MaxSurroundingTokens)

	language := languages.LanguageFromFilename(selection.FileName)
	docStart := DocStart(language)

	text := Render(docstringPromptBody, map[string]string{
		"language":                string(language),
		"selected_code":           truncatedSelectedText,
		"additional_instructions": AdditionalInstructions(language),
	})
	displayText := Render(docstringDisplayBody, map[string]string{
		"selected_code": selection.SelectedText,
	})
	assistantPrefix := Render(docstringAssistantBody, map[string]string{
		"code_block_language": languages.MarkdownCodeBlockLanguageIDForFilename(selection.FileName),
		"doc_start":           docStart,
	})

	contextMessages := GetContextMessagesFromSelection(ctx,
		truncatedSelectedText,
		truncatedPrecedingText,
		truncatedFollowingText,
		selection,
		rc.CodebaseContext,
		*rc.Search,
	)

	log.Debug().
		Str("source", string(source)).
		Str("file", selection.FileName).
		Str("language", string(language)).
		Bool("selection_truncated", len(truncatedSelectedText) < len(selection.SelectedText)).
		Int("selection_tokens", rc.Truncator.CountTokens(truncatedSelectedText)).
		Int("context_messages", len(contextMessages)).
		Msg("prompts: built docstring prompt")

	return &PromptBundle{
		Text:            text,
		DisplayText:     displayText,
		Source:          source,
		AssistantPrefix: assistantPrefix,
		AssistantText:   assistantPrefix,
		ContextMessages: contextMessages,
	}
}
