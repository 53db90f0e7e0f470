package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/docprompt/internal/languages"
	"github.com/docprompt/internal/transcript"
	"github.com/docprompt/internal/truncation"
)

const (
	maxIndexedFileSize   = 1 << 20
	defaultMaxFileTokens = 500
)

var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]{2,}`)

var skippedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
}

// LocalConfig configures a Local search.
type LocalConfig struct {
	Root          string
	RepoName      string
	Revision      string
	MaxFileTokens int
	// Exclude is a file that never appears in results, typically the one the
	// selection was taken from.
	Exclude string
}

// Local searches source files under a directory by identifier overlap with
// the query. It needs no index and is rebuilt from disk on every query.
type Local struct {
	cfg       LocalConfig
	truncator truncation.Truncator
}

// NewLocal returns a Local rooted at cfg.Root.
func NewLocal(cfg LocalConfig, truncator truncation.Truncator) (*Local, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve context root %s: %w", cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat context root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("context root is not a directory: %s", root)
	}
	cfg.Root = root

	if cfg.Exclude != "" {
		if abs, err := filepath.Abs(cfg.Exclude); err == nil {
			cfg.Exclude = abs
		}
	}
	if cfg.MaxFileTokens <= 0 {
		cfg.MaxFileTokens = defaultMaxFileTokens
	}
	if truncator == nil {
		truncator = truncation.CharEstimate{}
	}
	return &Local{cfg: cfg, truncator: truncator}, nil
}

func (l *Local) CheckEmbeddingsConnection() bool { return true }

type hit struct {
	rel   string
	score int
	text  bool
	body  string
}

// GetContextMessages implements Context.
func (l *Local) GetContextMessages(ctx context.Context, query string, opts SearchOptions) ([]transcript.ContextMessage, error) {
	terms := queryTerms(query)
	if len(terms) == 0 || (opts.NumCodeResults <= 0 && opts.NumTextResults <= 0) {
		return nil, nil
	}

	var codeHits, textHits []hit
	err := filepath.WalkDir(l.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != l.cfg.Root && (strings.HasPrefix(d.Name(), ".") || skippedDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if path == l.cfg.Exclude || !languages.IsSourceFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxIndexedFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		score := scoreContent(string(data), terms)
		if score == 0 {
			return nil
		}

		rel, err := filepath.Rel(l.cfg.Root, path)
		if err != nil {
			return err
		}
		h := hit{rel: filepath.ToSlash(rel), score: score, body: string(data)}
		if languages.LanguageFromFilename(path) == languages.Markdown {
			h.text = true
			textHits = append(textHits, h)
		} else {
			codeHits = append(codeHits, h)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", l.cfg.Root, err)
	}

	var results []hit
	results = append(results, topHits(codeHits, opts.NumCodeResults)...)
	results = append(results, topHits(textHits, opts.NumTextResults)...)
	log.Debug().
		Str("root", l.cfg.Root).
		Int("terms", len(terms)).
		Int("code_hits", len(codeHits)).
		Int("text_hits", len(textHits)).
		Int("results", len(results)).
		Msg("codebase: local search complete")

	var messages []transcript.ContextMessage
	for _, h := range results {
		body := strings.TrimRight(l.truncator.TruncateText(h.body, l.cfg.MaxFileTokens), "\n")
		file := transcript.ContextFile{FileName: h.rel, RepoName: l.cfg.RepoName, Revision: l.cfg.Revision}
		var text string
		if h.text {
			text = PopulateTextContextTemplate(body, h.rel, l.cfg.RepoName)
		} else {
			text = PopulateCodeContextTemplate(body, h.rel, l.cfg.RepoName)
		}
		messages = append(messages, GetContextMessageWithResponse(text, file)...)
	}
	return messages, nil
}

func queryTerms(query string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, m := range identifierPattern.FindAllString(query, -1) {
		term := strings.ToLower(m)
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms
}

// scoreContent counts the distinct query terms that occur in content.
func scoreContent(content string, terms []string) int {
	lower := strings.ToLower(content)
	score := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			score++
		}
	}
	return score
}

func topHits(hits []hit, n int) []hit {
	if n <= 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].rel < hits[j].rel
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
