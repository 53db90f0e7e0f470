package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageFromFilename(t *testing.T) {
	tcs := []struct {
		name     string
		filename string
		lang     Language
	}{
		{name: "Go", filename: "main.go", lang: Go},
		{name: "Python", filename: "handler.py", lang: Python},
		{name: "Java", filename: "src/App.java", lang: Java},
		{name: "JavaScript", filename: "app.mjs", lang: JavaScript},
		{name: "TypeScript", filename: "component.tsx", lang: TypeScript},
		{name: "UpperCaseExt", filename: "LEGACY.PY", lang: Python},
		{name: "Cpp", filename: "main.cc", lang: Cpp},
		{name: "UnknownExt", filename: "notes.zig", lang: Language("zig")},
		{name: "NoExt", filename: "Makefile", lang: Unknown},
		{name: "Empty", filename: "", lang: Unknown},
		{name: "TrailingDot", filename: "weird.", lang: Unknown},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lang, LanguageFromFilename(tc.filename))
		})
	}
}

func TestMarkdownCodeBlockLanguageIDForFilename(t *testing.T) {
	assert.Equal(t, "python", MarkdownCodeBlockLanguageIDForFilename("foo.py"))
	assert.Equal(t, "go", MarkdownCodeBlockLanguageIDForFilename("/abs/path/main.go"))
	assert.Equal(t, "typescript", MarkdownCodeBlockLanguageIDForFilename("x.ts"))
	assert.Equal(t, "csharp", MarkdownCodeBlockLanguageIDForFilename("Program.cs"))
	assert.Equal(t, "bash", MarkdownCodeBlockLanguageIDForFilename("run.sh"))
	assert.Equal(t, "zig", MarkdownCodeBlockLanguageIDForFilename("notes.zig"))
	assert.Equal(t, "", MarkdownCodeBlockLanguageIDForFilename("Makefile"))
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("a/b/c.go"))
	assert.True(t, IsSourceFile("Main.KT"))
	assert.False(t, IsSourceFile("README"))
	assert.False(t, IsSourceFile("image.png"))
	assert.True(t, IsKnown(Python))
	assert.False(t, IsKnown(Language("zig")))
}

func TestIsSourceFile_CoversExtensionTable(t *testing.T) {
	for ext, lang := range extToLanguage {
		assert.True(t, IsKnown(lang), string(lang))
		assert.True(t, IsSourceFile("file"+ext), ext)
	}
	assert.False(t, IsKnown(Unknown))
	assert.False(t, IsSourceFile("odd.Unknown"))
}
