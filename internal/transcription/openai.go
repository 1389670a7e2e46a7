package transcription

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAPIKeyRequired is returned when no OpenAI API key is configured.
var ErrAPIKeyRequired = errors.New("transcription: OpenAI API key is required")

// OpenAITranscriber implements Transcriber using the OpenAI Whisper API.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

// Option configures an OpenAITranscriber.
type Option func(*OpenAITranscriber)

// WithModel overrides the Whisper model.
func WithModel(model string) Option {
	return func(t *OpenAITranscriber) {
		t.model = model
	}
}

// WithClient sets a custom OpenAI client, used by tests to point at a
// stub server.
func WithClient(c *openai.Client) Option {
	return func(t *OpenAITranscriber) {
		t.client = c
	}
}

// NewOpenAITranscriber creates a Whisper-backed transcriber.
func NewOpenAITranscriber(apiKey string, opts ...Option) (*OpenAITranscriber, error) {
	t := &OpenAITranscriber{model: openai.Whisper1}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		if apiKey == "" {
			return nil, ErrAPIKeyRequired
		}
		t.client = openai.NewClient(apiKey)
	}
	return t, nil
}

// Transcribe returns the plain-text transcript of the audio file.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("transcription: audio file not found: %w", err)
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}

	return resp.Text, nil
}

// TranscribeVerbose returns the transcript with per-segment timestamps.
func (t *OpenAITranscriber) TranscribeVerbose(ctx context.Context, audioPath string) (Result, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return Result{}, fmt.Errorf("transcription: audio file not found: %w", err)
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return Result{}, fmt.Errorf("transcription: %w", err)
	}

	res := Result{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		res.Segments = append(res.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return res, nil
}

// Compile-time check that OpenAITranscriber implements Transcriber.
var _ Transcriber = (*OpenAITranscriber)(nil)
