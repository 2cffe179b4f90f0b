package sanitize

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Buy groceries", "Buy groceries"},
		{"trims whitespace", "  padded  ", "padded"},
		{"escapes script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"escapes quotes", `say "hi"`, "say &#34;hi&#34;"},
		{"escapes ampersand", "a & b", "a &amp; b"},
		{"strips nul bytes", "a\x00b", "ab"},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.input); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"already normal", "alice@example.com", "alice@example.com"},
		{"uppercase", "Alice@Example.COM", "alice@example.com"},
		{"trims whitespace", "  alice@example.com  ", "alice@example.com"},
		{"strips nul bytes", "alice\x00@example.com", "alice@example.com"},
		{"does not escape html", "a+<b>@example.com", "a+<b>@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
