package util

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text unchanged", input: "Streetlight out on 4th cross", want: "Streetlight out on 4th cross"},
		{name: "empty", input: "", want: ""},
		{name: "strips tags", input: "<b>urgent</b> pothole", want: "urgent pothole"},
		{name: "strips script entirely except text", input: `<script>alert("x")</script>water leak`, want: `alert("x") water leak`},
		{name: "br becomes space", input: "line one<br>line two", want: "line one line two"},
		{name: "collapses whitespace", input: "a   b\n\tc", want: "a b c"},
		{name: "nested markup", input: `<div class="x"><p>hello <em>there</em></p></div>`, want: "hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
