package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Go To Statement Considered Harmful",
			want:  "Go To Statement Considered Harmful",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "script tag inside title",
			input: "React patterns<SCRIPT SRC=\"evil.js\"></SCRIPT>",
			want:  "React patterns",
		},
		{
			name:  "multi-line script",
			input: "React patterns<script>\nalert(1)\n</script>",
			want:  "React patterns",
		},
		{
			name:  "unclosed script tag",
			input: "React patterns<script>alert(1)",
			want:  "React patterns",
		},
		{
			name:  "stray closing tag",
			input: "Type wars</script >",
			want:  "Type wars",
		},
		{
			name:  "text after script is kept",
			input: "<script>a</script>Type wars<script>b</script>",
			want:  "Type wars",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := sanitizeText(tc.input)
			assert.Equal(t, tc.want, output)
		})
	}
}
