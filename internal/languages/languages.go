package languages

import (
	"path/filepath"
	"strings"
)

// Language is the display name of a programming language, e.g. "TypeScript".
type Language string

const (
	Unknown    Language = "Unknown"
	C          Language = "C"
	Cpp        Language = "C++"
	CSharp     Language = "C#"
	CSS        Language = "CSS"
	Dart       Language = "Dart"
	Elixir     Language = "Elixir"
	Go         Language = "Go"
	HTML       Language = "HTML"
	Java       Language = "Java"
	JavaScript Language = "JavaScript"
	Kotlin     Language = "Kotlin"
	Lua        Language = "Lua"
	Markdown   Language = "Markdown"
	ObjectiveC Language = "Objective-C"
	PHP        Language = "PHP"
	Python     Language = "Python"
	R          Language = "R"
	Ruby       Language = "Ruby"
	Rust       Language = "Rust"
	Scala      Language = "Scala"
	Shell      Language = "Shell"
	SQL        Language = "SQL"
	Swift      Language = "Swift"
	TypeScript Language = "TypeScript"
)

var extToLanguage = map[string]Language{
	".c":     C,
	".h":     C,
	".cpp":   Cpp,
	".cc":    Cpp,
	".cxx":   Cpp,
	".hpp":   Cpp,
	".hh":    Cpp,
	".hxx":   Cpp,
	".cs":    CSharp,
	".csx":   CSharp,
	".css":   CSS,
	".dart":  Dart,
	".ex":    Elixir,
	".exs":   Elixir,
	".go":    Go,
	".html":  HTML,
	".htm":   HTML,
	".java":  Java,
	".js":    JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".jsx":   JavaScript,
	".kt":    Kotlin,
	".kts":   Kotlin,
	".lua":   Lua,
	".md":    Markdown,
	".m":     ObjectiveC,
	".mm":    ObjectiveC,
	".php":   PHP,
	".phtml": PHP,
	".py":    Python,
	".r":     R,
	".rb":    Ruby,
	".rs":    Rust,
	".scala": Scala,
	".sh":    Shell,
	".bash":  Shell,
	".zsh":   Shell,
	".sql":   SQL,
	".swift": Swift,
	".ts":    TypeScript,
	".tsx":   TypeScript,
}

// markdownIDs holds the fenced-code-block info string for each language.
var markdownIDs = map[Language]string{
	C:          "c",
	Cpp:        "cpp",
	CSharp:     "csharp",
	CSS:        "css",
	Dart:       "dart",
	Elixir:     "elixir",
	Go:         "go",
	HTML:       "html",
	Java:       "java",
	JavaScript: "javascript",
	Kotlin:     "kotlin",
	Lua:        "lua",
	Markdown:   "markdown",
	ObjectiveC: "objectivec",
	PHP:        "php",
	Python:     "python",
	R:          "r",
	Ruby:       "ruby",
	Rust:       "rust",
	Scala:      "scala",
	Shell:      "bash",
	SQL:        "sql",
	Swift:      "swift",
	TypeScript: "typescript",
}

// LanguageFromFilename resolves the language of a file from its extension.
// An unrecognized extension is returned verbatim (without the dot) so callers
// still have a name to put in front of the user; a file without an extension
// resolves to Unknown.
func LanguageFromFilename(name string) Language {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return Unknown
	}
	if lang, ok := extToLanguage[strings.ToLower(ext)]; ok {
		return lang
	}
	return Language(strings.TrimPrefix(ext, "."))
}

// MarkdownCodeBlockLanguageIDForFilename returns the info string to put after
// an opening ``` fence for code from the named file. Unknown extensions fall
// back to the bare extension; files without one get no tag.
func MarkdownCodeBlockLanguageIDForFilename(name string) string {
	lang := LanguageFromFilename(name)
	if lang == Unknown {
		return ""
	}
	if id, ok := markdownIDs[lang]; ok {
		return id
	}
	return strings.ToLower(string(lang))
}

// IsKnown reports whether lang is one of the languages in the extension table.
func IsKnown(lang Language) bool {
	_, ok := markdownIDs[lang]
	return ok
}

// IsSourceFile reports whether name has an extension of a recognized language.
func IsSourceFile(name string) bool {
	return IsKnown(LanguageFromFilename(name))
}
