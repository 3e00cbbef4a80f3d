package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minhyannv/aera-go/pkg/model"
	"github.com/minhyannv/aera-go/pkg/prompt"
)

// scriptedGenerator returns queued answers and records every prompt.
type scriptedGenerator struct {
	answers []string
	errs    []error
	prompts []string
	opts    []model.Options
}

func (g *scriptedGenerator) Generate(_ context.Context, p string, opts model.Options) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, p)
	g.opts = append(g.opts, opts)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.answers) {
		return g.answers[i], nil
	}
	return "", nil
}

func TestRunREPLRecordsTurns(t *testing.T) {
	gen := &scriptedGenerator{answers: []string{"Hello!", "Go is a language."}}
	transcript := prompt.NewTranscript("")
	var out bytes.Buffer

	in := strings.NewReader("hi\n\nwhat is Go?\nquit\nnever read\n")
	if err := runREPL(context.Background(), model.Present(gen), transcript, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}

	if len(gen.prompts) != 2 {
		t.Fatalf("expected 2 generations, got %d", len(gen.prompts))
	}
	wantSecond := prompt.DefaultSystemInstruction + "\nHuman: hi\nAI: Hello!\nHuman: what is Go?\nAI:"
	if gen.prompts[1] != wantSecond {
		t.Fatalf("second prompt =\n%q\nwant\n%q", gen.prompts[1], wantSecond)
	}
	if gen.opts[0].MaxTokens != 256 {
		t.Fatalf("expected interactive profile, got %+v", gen.opts[0])
	}
	if transcript.Len() != 4 {
		t.Fatalf("expected 4 transcript lines, got %d", transcript.Len())
	}

	got := out.String()
	for _, needle := range []string{"type 'quit' to exit", "You: ", "AI: Hello!", "AI: Go is a language."} {
		if !strings.Contains(got, needle) {
			t.Fatalf("output missing %q:\n%s", needle, got)
		}
	}
}

func TestRunREPLQuitIsCaseInsensitive(t *testing.T) {
	for _, word := range []string{"QUIT", "Exit", "  quit  ", "/q"} {
		gen := &scriptedGenerator{}
		var out bytes.Buffer
		in := strings.NewReader(word + "\nhello\n")
		if err := runREPL(context.Background(), model.Present(gen), prompt.NewTranscript(""), replOptions{}, in, &out); err != nil {
			t.Fatalf("runREPL returned error: %v", err)
		}
		if len(gen.prompts) != 0 {
			t.Fatalf("%q should end the loop before any generation", word)
		}
	}
}

func TestRunREPLReportsErrorAndContinues(t *testing.T) {
	gen := &scriptedGenerator{
		errs:    []error{errors.New("llama-cli: exit status 1")},
		answers: []string{"", "Recovered."},
	}
	transcript := prompt.NewTranscript("")
	var out bytes.Buffer

	in := strings.NewReader("first\nsecond\n")
	if err := runREPL(context.Background(), model.Present(gen), transcript, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}

	if !strings.Contains(out.String(), "Error: llama-cli: exit status 1") {
		t.Fatalf("expected error report, got:\n%s", out.String())
	}
	if transcript.Len() != 2 {
		t.Fatalf("failed turn must not be recorded, got %d lines", transcript.Len())
	}
	if strings.Contains(gen.prompts[1], "Human: first") {
		t.Fatalf("failed turn leaked into the next prompt: %q", gen.prompts[1])
	}
}

func TestRunREPLWithoutModel(t *testing.T) {
	var out bytes.Buffer
	transcript := prompt.NewTranscript("")

	in := strings.NewReader("hello\n")
	if err := runREPL(context.Background(), model.Absent("model file not found: /m.gguf"), transcript, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Error: model unavailable: model file not found") {
		t.Fatalf("expected unavailable error, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "I'm Aera") {
		t.Fatal("interactive mode must not use fallback replies")
	}
	if transcript.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d", transcript.Len())
	}
}

func TestRunREPLClearCommand(t *testing.T) {
	gen := &scriptedGenerator{answers: []string{"A1", "A2"}}
	transcript := prompt.NewTranscript("S")
	var out bytes.Buffer

	in := strings.NewReader("one\n/clear\ntwo\n")
	if err := runREPL(context.Background(), model.Present(gen), transcript, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}
	if gen.prompts[1] != "S\nHuman: two\nAI:" {
		t.Fatalf("expected history to be cleared, got %q", gen.prompts[1])
	}
	if !strings.Contains(out.String(), "Conversation history cleared.") {
		t.Fatalf("missing clear confirmation:\n%s", out.String())
	}
}

func TestRunREPLHistoryCommand(t *testing.T) {
	gen := &scriptedGenerator{answers: []string{"Hi!"}}
	transcript := prompt.NewTranscript("S")
	var out bytes.Buffer

	in := strings.NewReader("/history\nhello\n/history\n")
	if err := runREPL(context.Background(), model.Present(gen), transcript, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "No conversation yet.") {
		t.Fatalf("expected empty history notice:\n%s", got)
	}
	if !strings.Contains(got, "S\nHuman: hello\nAI: Hi!\n") {
		t.Fatalf("expected transcript lines in output:\n%s", got)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("/history must not reach the model, got %d generations", len(gen.prompts))
	}
}

func TestRunREPLRequiresInput(t *testing.T) {
	if err := runREPL(context.Background(), model.Absent("x"), prompt.NewTranscript(""), replOptions{}, nil, nil); err == nil {
		t.Fatal("expected error for nil input")
	}
	if err := runREPL(context.Background(), model.Absent("x"), nil, replOptions{}, strings.NewReader(""), nil); err == nil {
		t.Fatal("expected error for nil transcript")
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		input       string
		wantHandled bool
		wantQuit    bool
		wantOutput  string
	}{
		{input: "/help", wantHandled: true, wantOutput: "Commands:"},
		{input: "/H", wantHandled: true, wantOutput: "Commands:"},
		{input: "/history", wantHandled: true, wantOutput: "No conversation yet."},
		{input: "/exit", wantHandled: true, wantQuit: true, wantOutput: "Goodbye!"},
		{input: "/nope", wantHandled: true, wantOutput: "Unknown command: /nope"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			handled, quit := handleCommand(tt.input, prompt.NewTranscript(""), &out)
			if handled != tt.wantHandled || quit != tt.wantQuit {
				t.Fatalf("handleCommand(%q) = %v, %v", tt.input, handled, quit)
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Fatalf("output %q missing %q", out.String(), tt.wantOutput)
			}
		})
	}
}
