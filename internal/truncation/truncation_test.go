package truncation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	assert.IsType(t, CharEstimate{}, tr)

	tr, err = New(TokenizerTiktoken)
	require.NoError(t, err)
	assert.IsType(t, &Tiktoken{}, tr)

	_, err = New("sentencepiece")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTokenizer))
}

func TestCharEstimate_TruncateText(t *testing.T) {
	tr := CharEstimate{}

	assert.Equal(t, "abcdefgh", tr.TruncateText("abcdefgh", 2), "exactly at budget is untouched")
	assert.Equal(t, "abcd", tr.TruncateText("abcdefgh", 1))
	assert.Equal(t, "", tr.TruncateText("abcdefgh", 0))
	assert.Equal(t, "", tr.TruncateText("", 10))
}

func TestCharEstimate_TruncateTextStart(t *testing.T) {
	tr := CharEstimate{}

	assert.Equal(t, "abcdefgh", tr.TruncateTextStart("abcdefgh", 2))
	assert.Equal(t, "efgh", tr.TruncateTextStart("abcdefgh", 1))
	assert.Equal(t, "", tr.TruncateTextStart("abcdefgh", -3))
}

func TestCharEstimate_LargeBudgets(t *testing.T) {
	text := "func Area(r float64) float64 { return math.Pi * r * r }"
	for _, budget := range []int{1 << 62, math.MaxInt / CharsPerToken, math.MaxInt} {
		assert.Equal(t, text, CharEstimate{}.TruncateText(text, budget), budget)
		assert.Equal(t, text, CharEstimate{}.TruncateTextStart(text, budget), budget)
	}
}

func TestCharEstimate_RuneBoundaries(t *testing.T) {
	tr := CharEstimate{}

	// é occupies bytes 3 and 4, so a 4-byte cut lands inside it.
	head := tr.TruncateText("abcé"+strings.Repeat("x", 10), 1)
	assert.Equal(t, "abc", head)
	assert.True(t, utf8.ValidString(head))

	// é occupies bytes 0 and 1, so keeping the last 4 bytes starts inside it.
	tail := tr.TruncateTextStart("éxxx", 1)
	assert.Equal(t, "xxx", tail)
	assert.True(t, utf8.ValidString(tail))
}

func TestCharEstimate_CountTokens(t *testing.T) {
	tr := CharEstimate{}
	assert.Equal(t, 0, tr.CountTokens(""))
	assert.Equal(t, 1, tr.CountTokens("abc"))
	assert.Equal(t, 2, tr.CountTokens("abcde"))
}

func TestTiktoken_TruncateText(t *testing.T) {
	tr := NewTiktoken()
	text := strings.Repeat("func add(a, b int) int { return a + b }\n", 50)

	total := tr.CountTokens(text)
	require.Greater(t, total, 20)

	head := tr.TruncateText(text, 20)
	assert.True(t, strings.HasPrefix(text, head), "truncated text must be a verbatim prefix")
	assert.Less(t, len(head), len(text))
	assert.NotEmpty(t, head)

	assert.Equal(t, text, tr.TruncateText(text, total), "text within budget is untouched")
}

func TestTiktoken_TruncateTextStart(t *testing.T) {
	tr := NewTiktoken()
	text := strings.Repeat("print('hello world')\n", 40)

	tail := tr.TruncateTextStart(text, 10)
	assert.True(t, strings.HasSuffix(text, tail), "truncated text must be a verbatim suffix")
	assert.Less(t, len(tail), len(text))
	assert.NotEmpty(t, tail)
}

func TestTiktoken_Deterministic(t *testing.T) {
	tr := NewTiktoken()
	text := strings.Repeat("日本語のテキストと English words mixed together. ", 30)

	first := tr.TruncateText(text, 25)
	second := tr.TruncateText(text, 25)
	assert.Equal(t, first, second)
	assert.True(t, utf8.ValidString(first))
}
