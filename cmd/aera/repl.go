package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/aera-go/pkg/logger"
	"github.com/minhyannv/aera-go/pkg/model"
	"github.com/minhyannv/aera-go/pkg/prompt"
)

const maxLineBytes = 1024 * 1024

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
}

// runREPL reads one line at a time and answers it with the model, keeping the
// conversation in transcript. Generation errors are reported and the turn is dropped.
func runREPL(
	ctx context.Context,
	m model.Availability,
	transcript *prompt.Transcript,
	opts replOptions,
	in io.Reader,
	out io.Writer,
) error {
	if transcript == nil {
		return fmt.Errorf("transcript is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", map[string]any{
		"model_available": m.Reason() == "",
	})

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	printWelcome(out)

	for {
		_, _ = fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isQuit(input) {
			break
		}

		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := handleCommand(input, transcript, out)
			if shouldQuit {
				break
			}
			if handled {
				continue
			}
		}

		answer, err := m.Generate(ctx, transcript.Prompt(input), model.InteractiveOptions())
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		transcript.Append(input, answer)
		loggerpkg.Debug(opts.Verbose, opts.Logger, "turn complete", map[string]any{
			"transcript_lines": transcript.Len(),
		})
		_, _ = fmt.Fprintf(out, "AI: %s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit":
		return true
	}
	return false
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "AI is running... type 'quit' to exit.")
	_, _ = fmt.Fprintln(out, "Commands:")
	printCommands(out)
}

func handleCommand(
	input string,
	transcript *prompt.Transcript,
	out io.Writer,
) (bool, bool) {
	cmd := strings.ToLower(input)
	switch cmd {
	case "/help", "/h":
		printHelp(out)
		return true, false
	case "/history":
		printHistory(out, transcript)
		return true, false
	case "/clear", "/c":
		transcript.Reset()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
		return true, false
	}
}

// printHistory prints the transcript as it is sent to the model.
func printHistory(out io.Writer, transcript *prompt.Transcript) {
	if transcript.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No conversation yet.")
		_, _ = fmt.Fprintln(out)
		return
	}
	for _, line := range transcript.Lines() {
		_, _ = fmt.Fprintln(out, line)
	}
	_, _ = fmt.Fprintln(out)
}

func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	printCommands(out)
}

func printCommands(out io.Writer) {
	_, _ = fmt.Fprintln(out, "  /help    - Show this help message")
	_, _ = fmt.Fprintln(out, "  /history - Show the conversation so far")
	_, _ = fmt.Fprintln(out, "  /clear   - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /quit    - Exit the program (or type quit / exit)")
	_, _ = fmt.Fprintln(out)
}
