package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup("warn", false, &buf))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "v", entry["k"])
}

func TestSetup_InvalidLevel(t *testing.T) {
	err := Setup("loud", false, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLogPrompt(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup("debug", false, &buf))

	prompt := strings.Repeat("a", 150) + strings.Repeat("b", 150)
	LogPrompt("generate-docstring", "text", prompt)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generate-docstring", entry["source"])
	assert.Equal(t, float64(300), entry["length"])
	assert.True(t, strings.HasSuffix(entry["preview_head"].(string), "..."))
	assert.True(t, strings.HasPrefix(entry["preview_tail"].(string), "..."))
}

func TestPreviewHelpers(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
	assert.Equal(t, "abc", getLastChars("abc", 5))
	assert.Equal(t, "...ef", getLastChars("abcdef", 2))
}
