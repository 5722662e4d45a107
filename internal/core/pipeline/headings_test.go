package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "html headings",
			input: "<h2>A</h2>x<h2>B</h2>y",
			want:  []string{"A", "B"},
		},
		{
			name:  "html headings with attributes and nested tags",
			input: `<h2 class="x"><strong>Czym jest</strong> pompa ciepła?</h2><p>...</p><h2>Koszty</h2>`,
			want:  []string{"Czym jest pompa ciepła?", "Koszty"},
		},
		{
			name:  "markup spanning lines",
			input: "<h2>\nPierwszy\n</h2>\n<h2>Drugi</h2>",
			want:  []string{"Pierwszy", "Drugi"},
		},
		{
			name:  "plain text fallback",
			input: "Pierwszy nagłówek\n\n  Drugi nagłówek  \n",
			want:  []string{"Pierwszy nagłówek", "Drugi nagłówek"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "  \n\t\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHeadings(tt.input))
		})
	}
}
