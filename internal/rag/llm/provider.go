package llm

import (
	"context"
	"fmt"
	"strings"
)

type Provider interface {
	Generate(ctx context.Context, query string, matches []string, messageHistory []string) (string, error)
}

// BuildUserPrompt assembles the grounded prompt sent alongside the system
// instruction. History entries arrive pre-formatted, oldest first.
func BuildUserPrompt(query string, matches []string, messageHistory []string) string {
	var b strings.Builder
	if len(messageHistory) > 0 {
		b.WriteString("Previous conversation:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("Context:\n%s\n\nUser Question: %s", strings.Join(matches, "\n"), query))
	return b.String()
}
