package responder

import (
	"strings"

	"github.com/minhyannv/aera-go/pkg/prompt"
)

// Sanitize cleans a generated continuation. It keeps lines up to the first
// blank line or the first later line opening with a role label, so a
// simulated next turn is dropped, then removes any remaining role labels.
func Sanitize(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if i > 0 && startsWithLabel(line) {
			break
		}
		if line = stripLabels(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func startsWithLabel(line string) bool {
	return strings.HasPrefix(line, prompt.HumanLabel) || strings.HasPrefix(line, prompt.AILabel)
}

func stripLabels(line string) string {
	line = strings.ReplaceAll(line, prompt.AILabel, "")
	line = strings.ReplaceAll(line, prompt.HumanLabel, "")
	return strings.TrimSpace(line)
}
