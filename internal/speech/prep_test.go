package speech

import "testing"

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "headings emphasis code and links",
			in:   "## Hello\n\nThis is **bold** and *italic* with `code`.\n\n- item one\n- item two\n\n[link text](https://example.com)",
			want: "Hello\n\nThis is bold and italic with code.\n\nitem one\nitem two\n\nlink text",
		},
		{
			name: "fenced code block keeps content",
			in:   "Try this:\n```python\nprint('hi')\n```\nDone.",
			want: "Try this:\nprint('hi')\nDone.",
		},
		{
			name: "blockquote and numbered list",
			in:   "> Breathe in.\n1. Inhale\n2. Exhale",
			want: "Breathe in.\nInhale\nExhale",
		},
		{
			name: "plain text untouched",
			in:   "Just a calm sentence.",
			want: "Just a calm sentence.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestChooseVoice(t *testing.T) {
	voices := []Voice{
		{Name: "Anna", Lang: "de-DE"},
		{Name: "Google UK English Male", Lang: "en-GB"},
		{Name: "Samantha", Lang: "en-US"},
	}

	got := ChooseVoice(voices, "en")
	if got == nil || got.Name != "Samantha" {
		t.Fatalf("ChooseVoice preferred = %+v, want Samantha", got)
	}

	noPreferred := []Voice{
		{Name: "Anna", Lang: "de-DE"},
		{Name: "Daniel", Lang: "en-GB"},
	}
	got = ChooseVoice(noPreferred, "en")
	if got == nil || got.Name != "Daniel" {
		t.Fatalf("ChooseVoice lang prefix = %+v, want Daniel", got)
	}

	got = ChooseVoice([]Voice{{Name: "Anna", Lang: "de-DE"}}, "en")
	if got == nil || got.Name != "Anna" {
		t.Fatalf("ChooseVoice fallback = %+v, want Anna", got)
	}

	if got := ChooseVoice(nil, "en"); got != nil {
		t.Fatalf("ChooseVoice(nil) = %+v, want nil", got)
	}
}
