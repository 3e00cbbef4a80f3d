package responder

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean single line is unchanged",
			in:   "Paris is the capital of France.",
			want: "Paris is the capital of France.",
		},
		{
			name: "truncates simulated next turn",
			in:   "Sure thing.\nHuman: and then?",
			want: "Sure thing.",
		},
		{
			name: "stops at label line after several content lines",
			in:   "First point.\nSecond point.\nAI: Anything else?\nHuman: no",
			want: "First point.\nSecond point.",
		},
		{
			name: "leading label then simulated turn",
			in:   "AI: Sure.\nHuman: thanks",
			want: "Sure.",
		},
		{
			name: "leading human label on first line is stripped",
			in:   "Human: echo",
			want: "echo",
		},
		{
			name: "strips leading label",
			in:   "AI: Hello there",
			want: "Hello there",
		},
		{
			name: "keeps lines until blank line",
			in:   "First.\nSecond.\n\nUnrelated tail.",
			want: "First.\nSecond.",
		},
		{
			name: "trims each kept line",
			in:   "  one  \n\ttwo\t",
			want: "one\ntwo",
		},
		{
			name: "labels inside a line are removed",
			in:   "You said Human: hi and AI: hello",
			want: "You said  hi and  hello",
		},
		{
			name: "only labels",
			in:   "AI:\nHuman:",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, in := range []string{
		"Sure thing.",
		"Go is a statically typed language.",
		"Sure thing.\nHuman: and then?",
		"a\nb\nAI: c",
		"a\nb\n\nc",
	} {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
