package summarization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAPIKeyRequired is returned when no OpenAI API key is configured.
var ErrAPIKeyRequired = errors.New("summarization: OpenAI API key is required")

// Canned responses for empty transcripts; no API call is made.
const (
	emptySummary  = "No transcript content to summarize."
	emptyAnalysis = "No transcript content to analyze."
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT3Dot5Turbo

// OpenAISummarizer implements Summarizer using OpenAI chat completions.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// Option configures an OpenAISummarizer.
type Option func(*OpenAISummarizer)

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(s *OpenAISummarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// WithClient sets a custom OpenAI client, used by tests to point at a
// stub server.
func WithClient(c *openai.Client) Option {
	return func(s *OpenAISummarizer) {
		s.client = c
	}
}

// NewOpenAISummarizer creates a chat-completions backed summarizer.
func NewOpenAISummarizer(apiKey string, opts ...Option) (*OpenAISummarizer, error) {
	s := &OpenAISummarizer{model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		if apiKey == "" {
			return nil, ErrAPIKeyRequired
		}
		s.client = openai.NewClient(apiKey)
	}
	return s, nil
}

// Summarize generates a summary of the transcript.
// An unknown type falls back to a comprehensive summary.
func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript string, typ Type) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return emptySummary, nil
	}

	return s.complete(ctx, completionSpec{
		system:      "You are an expert at creating clear, concise summaries of video content based on transcripts.",
		user:        summaryPrompt(transcript, typ),
		maxTokens:   1500,
		temperature: 0.3,
	})
}

// KeyPoints extracts the most important points from the transcript.
func (s *OpenAISummarizer) KeyPoints(ctx context.Context, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return []string{emptyAnalysis}, nil
	}

	prompt := fmt.Sprintf(`Extract the most important key points from this video transcript.
Return them as a numbered list, with each point being concise but informative.
Focus on main topics, important decisions, conclusions, and actionable items.

Transcript:
%s

Key Points:`, transcript)

	content, err := s.complete(ctx, completionSpec{
		system:      "You are an expert at identifying and extracting key information from video transcripts.",
		user:        prompt,
		maxTokens:   800,
		temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	return parseListItems(content), nil
}

// ActionItems extracts tasks and next steps from the transcript.
func (s *OpenAISummarizer) ActionItems(ctx context.Context, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return []string{emptyAnalysis}, nil
	}

	prompt := fmt.Sprintf(`Identify any action items, tasks, or next steps mentioned in this video transcript.
Return them as a clear list. If no specific action items are mentioned,
suggest relevant follow-up actions based on the content.

Transcript:
%s

Action Items:`, transcript)

	content, err := s.complete(ctx, completionSpec{
		system:      "You are an expert at identifying actionable tasks and next steps from video content.",
		user:        prompt,
		maxTokens:   600,
		temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	return parseListItems(content), nil
}

// completionSpec captures one chat completion call.
type completionSpec struct {
	system      string
	user        string
	maxTokens   int
	temperature float32
}

func (s *OpenAISummarizer) complete(ctx context.Context, spec completionSpec) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.system},
			{Role: openai.ChatMessageRoleUser, Content: spec.user},
		},
		MaxTokens:   spec.maxTokens,
		Temperature: spec.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("summarization: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarization: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// summaryPrompt builds the user prompt for a summary request.
func summaryPrompt(transcript string, typ Type) string {
	base := fmt.Sprintf("Please summarize the following video transcript:\n\n%s\n\n", transcript)

	switch typ {
	case TypeBrief:
		return base + "Provide a brief, 2-3 sentence summary of the main points."
	case TypeKeyPoints:
		return base + "Extract and list the key points discussed in the video."
	default:
		return base + "Provide a comprehensive summary that covers:\n" +
			"1. Main topic/purpose of the video\n" +
			"2. Key points and important details\n" +
			"3. Conclusions or outcomes\n" +
			"4. Any action items or next steps mentioned"
	}
}

// Compile-time check that OpenAISummarizer implements Summarizer.
var _ Summarizer = (*OpenAISummarizer)(nil)
