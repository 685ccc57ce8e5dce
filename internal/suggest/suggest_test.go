package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		cursor int
		want   string
	}{
		{"function definition", "def ", 4, "my_function():\n    pass"},
		{"import statement", "import ", 7, "sys"},
		{"print call", "print(", 6, `"hello")`},
		{"print call with trailing space", "print( ", 7, `"hello")`},
		{"no pattern", "x = 1", 5, fallback},
		{"cursor mid-buffer", "def foo\nimport ", 4, "my_function():\n    pass"},
		{"empty buffer", "", 0, fallback},
		{"cursor past end is clamped", "import ", 100, "sys"},
		{"negative cursor is clamped", "def ", -5, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Suggest(tt.code, tt.cursor))
		})
	}
}
