package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Selection is a snapshot of the user's selected code and the text around it.
type Selection struct {
	FileName      string `json:"fileName"`
	RepoName      string `json:"repoName,omitempty"`
	Revision      string `json:"revision,omitempty"`
	PrecedingText string `json:"precedingText"`
	SelectedText  string `json:"selectedText"`
	FollowingText string `json:"followingText"`
}

// Editor is the slice of an editor integration that recipes depend on.
type Editor interface {
	// GetActiveTextEditorSelectionOrEntireFile returns the current selection,
	// the whole file when nothing is selected, or nil when there is nothing to
	// work with.
	GetActiveTextEditorSelectionOrEntireFile(ctx context.Context) *Selection
	// ShowWarningMessage surfaces message to the user.
	ShowWarningMessage(ctx context.Context, message string)
}

// LineRange selects lines of a file, 1-based and inclusive. The zero value
// selects the entire file.
type LineRange struct {
	Start int
	End   int
}

// IsZero reports whether r selects the entire file.
func (r LineRange) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// FileEditor serves a selection out of a file on disk.
type FileEditor struct {
	fileName string
	repoName string
	revision string
	content  string
	lines    LineRange
	warnings io.Writer
}

// FileEditorOption customizes a FileEditor.
type FileEditorOption func(*FileEditor)

// WithRepository records repository metadata on the produced selections.
func WithRepository(repoName, revision string) FileEditorOption {
	return func(e *FileEditor) {
		e.repoName = repoName
		e.revision = revision
	}
}

// WithWarningWriter sends warnings to w in addition to the log. Defaults to stderr.
func WithWarningWriter(w io.Writer) FileEditorOption {
	return func(e *FileEditor) {
		e.warnings = w
	}
}

// NewFileEditor reads path and prepares it for selection of lines.
func NewFileEditor(path string, lines LineRange, opts ...FileEditorOption) (*FileEditor, error) {
	if lines.Start < 0 || lines.End < 0 {
		return nil, fmt.Errorf("invalid line range %d-%d: lines are 1-based", lines.Start, lines.End)
	}
	if lines.End != 0 && lines.End < lines.Start {
		return nil, fmt.Errorf("invalid line range %d-%d: end before start", lines.Start, lines.End)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewBufferEditor(path, string(data), lines, opts...), nil
}

// NewBufferEditor is NewFileEditor over in-memory content.
func NewBufferEditor(fileName, content string, lines LineRange, opts ...FileEditorOption) *FileEditor {
	e := &FileEditor{
		fileName: fileName,
		content:  content,
		lines:    lines,
		warnings: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetActiveTextEditorSelectionOrEntireFile implements Editor. It returns nil
// when the file is blank or the requested lines lie past its end.
func (e *FileEditor) GetActiveTextEditorSelectionOrEntireFile(ctx context.Context) *Selection {
	if strings.TrimSpace(e.content) == "" {
		return nil
	}

	sel := &Selection{
		FileName: e.fileName,
		RepoName: e.repoName,
		Revision: e.revision,
	}
	if e.lines.IsZero() {
		sel.SelectedText = e.content
		return sel
	}

	lines := strings.SplitAfter(e.content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	start := e.lines.Start
	if start == 0 {
		start = 1
	}
	end := e.lines.End
	if end == 0 || end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) {
		return nil
	}

	sel.PrecedingText = strings.Join(lines[:start-1], "")
	sel.SelectedText = strings.Join(lines[start-1:end], "")
	sel.FollowingText = strings.Join(lines[end:], "")
	if strings.TrimSpace(sel.SelectedText) == "" {
		return nil
	}
	return sel
}

// ShowWarningMessage implements Editor.
func (e *FileEditor) ShowWarningMessage(ctx context.Context, message string) {
	log.Warn().Str("file", e.fileName).Msg(message)
	if e.warnings != nil {
		fmt.Fprintln(e.warnings, "Warning: "+message)
	}
}
