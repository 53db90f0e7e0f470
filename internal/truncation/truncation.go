package truncation

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"
)

// CharsPerToken is the rough ratio used by the character-based estimate.
const CharsPerToken = 4

// Tokenizer names accepted by New.
const (
	TokenizerChars    = "chars"
	TokenizerTiktoken = "tiktoken"
)

// ErrUnknownTokenizer is returned by New for an unsupported tokenizer name.
var ErrUnknownTokenizer = errors.New("truncation: unknown tokenizer")

// Truncator shortens text to fit a token budget.
// Implementations must be deterministic for a given input.
type Truncator interface {
	// TruncateText keeps the start of text and drops whatever does not fit in maxTokens.
	TruncateText(text string, maxTokens int) string
	// TruncateTextStart keeps the end of text and drops leading overflow.
	TruncateTextStart(text string, maxTokens int) string
	// CountTokens returns the number of tokens text occupies.
	CountTokens(text string) int
}

// New returns the Truncator registered under name. An empty name selects the
// character estimate.
func New(name string) (Truncator, error) {
	switch name {
	case "", TokenizerChars:
		return CharEstimate{}, nil
	case TokenizerTiktoken:
		return NewTiktoken(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
	}
}

// CharEstimate treats every CharsPerToken bytes as one token.
type CharEstimate struct{}

func (c CharEstimate) TruncateText(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if c.fits(text, maxTokens) {
		return text
	}
	return text[:prefixBoundary(text, maxTokens*CharsPerToken)]
}

func (c CharEstimate) TruncateTextStart(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if c.fits(text, maxTokens) {
		return text
	}
	return text[suffixBoundary(text, len(text)-maxTokens*CharsPerToken):]
}

func (CharEstimate) CountTokens(text string) int {
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

// fits reports whether text is within maxTokens, comparing token counts since
// maxTokens*CharsPerToken may overflow. A false result implies
// maxTokens*CharsPerToken < len(text).
func (c CharEstimate) fits(text string, maxTokens int) bool {
	return maxTokens >= c.CountTokens(text)
}

// Tiktoken counts tokens with the O200k BPE encoding. If the codec cannot be
// loaded or fails on an input, it degrades to CharEstimate for that call.
type Tiktoken struct {
	once  sync.Once
	codec tokenizer.Codec
	err   error
}

// NewTiktoken returns a Tiktoken truncator. The codec is loaded on first use.
func NewTiktoken() *Tiktoken {
	return &Tiktoken{}
}

func (t *Tiktoken) load() (tokenizer.Codec, error) {
	t.once.Do(func() {
		t.codec, t.err = tokenizer.Get(tokenizer.O200kBase)
		if t.err != nil {
			log.Warn().Err(t.err).Msg("truncation: tiktoken codec unavailable, using character estimate")
		}
	})
	return t.codec, t.err
}

func (t *Tiktoken) encode(text string) ([]uint, tokenizer.Codec, bool) {
	codec, err := t.load()
	if err != nil {
		return nil, nil, false
	}
	ids, _, err := codec.Encode(text)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(text)).Msg("truncation: could not encode text")
		return nil, nil, false
	}
	return ids, codec, true
}

func (t *Tiktoken) TruncateText(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids, codec, ok := t.encode(text)
	if !ok {
		return CharEstimate{}.TruncateText(text, maxTokens)
	}
	if len(ids) <= maxTokens {
		return text
	}
	head, err := codec.Decode(ids[:maxTokens])
	if err != nil {
		return CharEstimate{}.TruncateText(text, maxTokens)
	}
	// Decoded BPE tokens are a byte prefix of the input; cut the original so a
	// split multi-byte rune is dropped rather than mangled.
	return text[:prefixBoundary(text, len(head))]
}

func (t *Tiktoken) TruncateTextStart(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids, codec, ok := t.encode(text)
	if !ok {
		return CharEstimate{}.TruncateTextStart(text, maxTokens)
	}
	if len(ids) <= maxTokens {
		return text
	}
	tail, err := codec.Decode(ids[len(ids)-maxTokens:])
	if err != nil {
		return CharEstimate{}.TruncateTextStart(text, maxTokens)
	}
	return text[suffixBoundary(text, len(text)-len(tail)):]
}

func (t *Tiktoken) CountTokens(text string) int {
	ids, _, ok := t.encode(text)
	if !ok {
		return CharEstimate{}.CountTokens(text)
	}
	return len(ids)
}

// prefixBoundary returns the largest n <= limit such that text[:n] does not end
// inside a multi-byte rune.
func prefixBoundary(text string, limit int) int {
	if limit >= len(text) {
		return len(text)
	}
	if limit < 0 {
		return 0
	}
	n := limit
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return n
}

// suffixBoundary returns the smallest n >= start such that text[n:] does not
// begin inside a multi-byte rune.
func suffixBoundary(text string, start int) int {
	if start <= 0 {
		return 0
	}
	n := start
	for n < len(text) && !utf8.RuneStart(text[n]) {
		n++
	}
	return n
}
