package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no escapes", "plain text", "plain text"},
		{"single escape", `line1\nline2`, "line1\nline2"},
		{"multiple escapes", `a\nb\n\nc`, "a\nb\n\nc"},
		{"real newline untouched", "a\nb", "a\nb"},
		{"tab escape untouched", `a\tb`, `a\tb`},
		{"escaped backslash before n", `a\\nb`, "a\\\nb"},
		{"trailing backslash", `end\`, `end\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeShortensByOnePerEscape(t *testing.T) {
	in := `line1\nline2`
	out := Normalize(in)
	assert.Equal(t, "line1\nline2", out)
	assert.Equal(t, len(in)-1, len(out))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		`\n`,
		`\\n`,
		`\\\n`,
		`a\nb\\nc\n`,
		"mixed\n" + `and\nescaped`,
		`\n\n\n`,
		`n\`,
	}

	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}
