package markdown

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name, in, want string
	}{
		{"heading", "# H", "<h1>H</h1>"},
		{"emphasis", "**bold** and *it*", "<strong>bold</strong> and <em>it</em>"},
		{"list", "- a\n- b", "<li>a</li>"},
		{"link", "[x](https://example.com)", `<a href="https://example.com">x</a>`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"raw html passes through", "<span class=\"x\">hi</span>", `<span class="x">hi</span>`},
		{"code", "`x := 1`", "<code>x := 1</code>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.in)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Fatalf("Render(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}
