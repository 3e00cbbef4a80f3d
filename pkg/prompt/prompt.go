// Package prompt assembles plain-text completion prompts.
package prompt

import "strings"

// Role labels that prefix transcript lines.
const (
	HumanLabel = "Human:"
	AILabel    = "AI:"
)

// DefaultSystemInstruction is used when the caller supplies no system prompt.
const DefaultSystemInstruction = "You are a friendly and knowledgeable tutor. " +
	"Answer questions clearly and concisely. " +
	"If the user's request is unclear, ask up to two clarifying questions first. " +
	"Do not give unrelated examples or invent topics. Stay strictly on what the user asks."

// Build joins the system instruction, the history and the new human turn,
// ending with an open AI turn. A blank history contributes no line.
// An empty system falls back to DefaultSystemInstruction.
func Build(system, history, userInput string) string {
	if system == "" {
		system = DefaultSystemInstruction
	}
	parts := make([]string, 0, 4)
	parts = append(parts, system)
	if strings.TrimSpace(history) != "" {
		parts = append(parts, history)
	}
	parts = append(parts, HumanLine(userInput), AILabel)
	return strings.Join(parts, "\n")
}

// HumanLine renders a human turn.
func HumanLine(text string) string {
	return HumanLabel + " " + text
}

// AILine renders an assistant turn.
func AILine(text string) string {
	return AILabel + " " + text
}
