// Package summarization generates summaries, key points and action items
// from transcripts through the OpenAI chat completions API.
package summarization

import (
	"context"
	"strings"
)

// Type selects the shape of the generated summary.
type Type string

const (
	// TypeBrief asks for a 2-3 sentence summary.
	TypeBrief Type = "brief"
	// TypeComprehensive asks for a full structured summary. This is the default.
	TypeComprehensive Type = "comprehensive"
	// TypeKeyPoints asks for a list of the key points discussed.
	TypeKeyPoints Type = "key_points"
)

// IsValid returns true if the summary type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypeBrief || t == TypeComprehensive || t == TypeKeyPoints
}

// Summarizer generates derived text from a transcript.
type Summarizer interface {
	// Summarize generates a summary of the given type.
	Summarize(ctx context.Context, transcript string, typ Type) (string, error)

	// KeyPoints extracts the most important points as a list.
	KeyPoints(ctx context.Context, transcript string) ([]string, error)

	// ActionItems extracts tasks and next steps as a list.
	ActionItems(ctx context.Context, transcript string) ([]string, error)
}

// parseListItems extracts the entries of a numbered or bulleted list from
// model output. Lines that do not look like list entries are dropped; if no
// entry is found at all, the whole content is returned as a single item.
func parseListItems(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListLine(line) {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-• "))
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 && strings.TrimSpace(content) != "" {
		return []string{strings.TrimSpace(content)}
	}
	return items
}

func isListLine(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	return (c >= '0' && c <= '9') || c == '-' || strings.HasPrefix(line, "•")
}
