package prompts

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/docprompt/internal/codebase"
	"github.com/docprompt/internal/editor"
	"github.com/docprompt/internal/transcript"
)

// GetContextMessagesFromSelection gathers the context sent ahead of a recipe
// prompt: codebase search results for the selected text, then the code before
// and after the selection. Nothing is returned when the codebase context is
// unavailable. A failed search is logged and only drops the search results.
func GetContextMessagesFromSelection(
	ctx context.Context,
	selectedText, precedingText, followingText string,
	selection *editor.Selection,
	codebaseContext codebase.Context,
	opts codebase.SearchOptions,
) []transcript.ContextMessage {
	if codebaseContext == nil || !codebaseContext.CheckEmbeddingsConnection() {
		return []transcript.ContextMessage{}
	}

	messages := []transcript.ContextMessage{}
	searchResults, err := codebaseContext.GetContextMessages(ctx, selectedText, opts)
	if err != nil {
		log.Warn().Err(err).Str("file", selection.FileName).Msg("prompts: codebase context search failed")
	} else {
		messages = append(messages, searchResults...)
	}

	file := transcript.ContextFile{
		FileName: selection.FileName,
		RepoName: selection.RepoName,
		Revision: selection.Revision,
	}
	for _, text := range []string{precedingText, followingText} {
		if strings.TrimSpace(text) == "" {
			continue
		}
		snippet := codebase.PopulateCodeContextTemplate(text, selection.FileName, selection.RepoName)
		messages = append(messages, codebase.GetContextMessageWithResponse(snippet, file)...)
	}
	return messages
}
