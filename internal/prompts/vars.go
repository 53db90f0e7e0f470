package prompts

import (
	"regexp"
	"strings"
)

// Placeholder represents a single {{VAR:...}} occurrence with parsed options.
type Placeholder struct {
	Raw     string
	Name    string
	Options map[string]string // e.g., default
}

var (
	// Matches {{VAR:name|key=value|key2="quoted value"}}
	// Capture 1 = name, Capture 2 = options (may be empty)
	varPattern = regexp.MustCompile(`\{\{VAR:([a-zA-Z0-9_\-]+)((?:\|[^}]+)?)}}`)
	optPattern = regexp.MustCompile(`\|([^=|]+)=([^|]+)`) // key=value segments
)

// ParsePlaceholders returns all placeholder occurrences in order of appearance.
func ParsePlaceholders(body string) []Placeholder {
	matches := varPattern.FindAllStringSubmatch(body, -1)
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, Placeholder{Raw: m[0], Name: m[1], Options: parseOptions(m[2])})
	}
	return out
}

// Render replaces every placeholder in body with its value from vars, falling
// back to the placeholder's default option and then to the empty string.
// Substitution is a single pass: placeholders inside substituted values are
// left as-is.
func Render(body string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(body, func(raw string) string {
		m := varPattern.FindStringSubmatch(raw)
		if v, ok := vars[m[1]]; ok {
			return v
		}
		return parseOptions(m[2])["default"]
	})
}

func parseOptions(optsRaw string) map[string]string {
	opts := map[string]string{}
	if optsRaw == "" {
		return opts
	}
	for _, seg := range optPattern.FindAllStringSubmatch(optsRaw, -1) {
		key := strings.TrimSpace(seg[1])
		val := strings.TrimSpace(seg[2])
		// Trim surrounding quotes if present
		if len(val) >= 2 && ((val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'')) {
			val = val[1 : len(val)-1]
		}
		opts[strings.ToLower(key)] = val
	}
	return opts
}
