package prompt

import "strings"

// Transcript is the conversation kept by interactive mode: the system
// instruction followed by role-tagged lines in order.
type Transcript struct {
	system string
	lines  []string
}

// NewTranscript starts a transcript. An empty system uses DefaultSystemInstruction.
func NewTranscript(system string) *Transcript {
	if system == "" {
		system = DefaultSystemInstruction
	}
	return &Transcript{system: system}
}

// Prompt renders the prompt for the next human turn without recording it.
func (t *Transcript) Prompt(userInput string) string {
	return Build(t.system, strings.Join(t.lines, "\n"), userInput)
}

// Append records one completed exchange.
func (t *Transcript) Append(userInput, answer string) {
	t.lines = append(t.lines, HumanLine(userInput), AILine(answer))
}

// Reset drops every turn and keeps the system instruction.
func (t *Transcript) Reset() {
	t.lines = nil
}

// Len reports the number of role-tagged lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Lines returns the system instruction followed by every role-tagged line.
func (t *Transcript) Lines() []string {
	out := make([]string, 0, len(t.lines)+1)
	out = append(out, t.system)
	return append(out, t.lines...)
}
