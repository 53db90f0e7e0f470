package codebase

import (
	"context"
	"fmt"

	"github.com/docprompt/internal/languages"
	"github.com/docprompt/internal/transcript"
)

// SearchOptions bounds how many results of each kind a search returns.
type SearchOptions struct {
	NumCodeResults int
	NumTextResults int
}

// Context answers queries about the codebase the selection lives in.
type Context interface {
	// CheckEmbeddingsConnection reports whether searches can be served at all.
	CheckEmbeddingsConnection() bool
	// GetContextMessages returns human/assistant message pairs for code and
	// text related to query.
	GetContextMessages(ctx context.Context, query string, opts SearchOptions) ([]transcript.ContextMessage, error)
}

// Noop is a Context with no search backend.
type Noop struct{}

func (Noop) CheckEmbeddingsConnection() bool { return false }

func (Noop) GetContextMessages(context.Context, string, SearchOptions) ([]transcript.ContextMessage, error) {
	return nil, nil
}

// PopulateCodeContextTemplate wraps a code snippet in the message that
// introduces it to the model.
func PopulateCodeContextTemplate(code, fileName, repoName string) string {
	return fmt.Sprintf("Use following code snippet from file `%s`%s:\n```%s\n%s\n```",
		fileName, inRepository(repoName), languages.MarkdownCodeBlockLanguageIDForFilename(fileName), code)
}

// PopulateTextContextTemplate is PopulateCodeContextTemplate for prose.
func PopulateTextContextTemplate(text, fileName, repoName string) string {
	return fmt.Sprintf("Use the following text from file `%s`%s:\n%s", fileName, inRepository(repoName), text)
}

func inRepository(repoName string) string {
	if repoName == "" {
		return ""
	}
	return " in repository `" + repoName + "`"
}

// GetContextMessageWithResponse pairs text with the assistant's acknowledgement.
func GetContextMessageWithResponse(text string, file transcript.ContextFile) []transcript.ContextMessage {
	return []transcript.ContextMessage{
		{Message: transcript.Message{Speaker: transcript.Human, Text: text}, File: &file},
		{Message: transcript.Message{Speaker: transcript.Assistant, Text: "Ok."}},
	}
}
