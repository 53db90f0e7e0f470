package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const previewChars = 200

// Setup configures the global zerolog logger. An empty level means info.
// When pretty is set, output goes through a human-readable console writer.
func Setup(level string, pretty bool, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// LogPrompt records a rendered prompt at debug level with short previews of
// its head and tail.
func LogPrompt(source, kind, prompt string) {
	log.Debug().
		Str("source", source).
		Str("kind", kind).
		Int("length", len(prompt)).
		Str("preview_head", truncateString(prompt, previewChars)).
		Str("preview_tail", getLastChars(prompt, previewChars)).
		Msg("prompt rendered")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func getLastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
