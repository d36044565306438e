// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "emphasis", input: "Works **perfectly**", want: []string{"<p>Works <strong>perfectly</strong></p>"}},
		{name: "list", input: "- Body\n- Lens cap", want: []string{"<ul>", "<li>Body</li>", "<li>Lens cap</li>"}},
		{name: "hard wraps", input: "line one\nline two", want: []string{"line one<br"}},
		{name: "table", input: "| a | b |\n|---|---|\n| 1 | 2 |", want: []string{"<table>", "<td>1</td>"}},
		{name: "headings demoted", input: "# Features\n\n## Details", want: []string{"<h3>Features</h3>", "<h4>Details</h4>"}},
		{name: "deep heading capped", input: "##### Note", want: []string{"<h6>Note</h6>"}},
		{name: "raw html", input: `<span class="hint">kept</span>`, want: []string{`<span class="hint">kept</span>`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.input, got, w)
				}
			}
		})
	}
}
