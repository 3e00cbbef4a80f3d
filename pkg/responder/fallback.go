package responder

import (
	"fmt"
	"strings"
)

// cannedReply pairs a lower-case keyword with the reply it triggers.
type cannedReply struct {
	Keyword string
	Reply   string
}

// fallbackTable is consulted in order; the first keyword found in the input wins.
var fallbackTable = []cannedReply{
	{Keyword: "hello", Reply: "Hello! I'm Aera, your AI assistant. How can I help you today?"},
	{Keyword: "hi", Reply: "Hi there! I'm here to help. What would you like to know?"},
	{Keyword: "how are you", Reply: "I'm doing well, thank you for asking! How can I assist you?"},
	{Keyword: "what is your name", Reply: "I'm Aera, your AI assistant. I'm here to help answer your questions."},
	{Keyword: "help", Reply: "I'm Aera, your AI assistant. I can help answer questions, provide information, and assist with various tasks. What would you like to know?"},
}

const unavailableTemplate = "I'm Aera, your AI assistant. I understand you asked: '%s'. " +
	"Unfortunately, my AI model is currently unavailable, but I'm here to help once it's back online. " +
	"Please try again later or contact support if this issue persists."

// Fallback answers without a model by keyword matching on the normalized input.
// Unmatched input is echoed verbatim inside a fixed apology.
func Fallback(userInput string) string {
	normalized := strings.ToLower(strings.TrimSpace(userInput))
	for _, entry := range fallbackTable {
		if strings.Contains(normalized, entry.Keyword) {
			return entry.Reply
		}
	}
	return fmt.Sprintf(unavailableTemplate, userInput)
}
