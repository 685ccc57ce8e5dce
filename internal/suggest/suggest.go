// Package suggest implements the stateless text-suggestion engine: a
// pattern matcher over the code preceding the cursor. It holds no state
// and consults no storage.
package suggest

import "strings"

const fallback = "# suggestion: consider adding a helper function"

// Request carries the buffer, cursor offset and language of one
// suggestion query. Language is accepted for forward compatibility;
// the current rules are language-agnostic.
type Request struct {
	Code           string `json:"code" binding:"required"`
	CursorPosition int    `json:"cursorPosition"`
	Language       string `json:"language"`
}

// Suggest returns a completion for the text before cursor. The cursor
// is clamped into [0, len(code)].
func Suggest(code string, cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(code) {
		cursor = len(code)
	}
	before := code[:cursor]

	switch {
	case strings.HasSuffix(before, "def "):
		return "my_function():\n    pass"
	case strings.HasSuffix(before, "import "):
		return "sys"
	case strings.HasSuffix(strings.TrimRight(before, " \t\n"), "print("):
		return `"hello")`
	default:
		return fallback
	}
}
