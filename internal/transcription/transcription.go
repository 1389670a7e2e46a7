// Package transcription converts audio files to text through the OpenAI
// Whisper API.
package transcription

import (
	"context"
	"fmt"
	"strings"
)

// Segment is a transcribed span of audio with its position in the source.
type Segment struct {
	// Start is the segment start in seconds.
	Start float64
	// End is the segment end in seconds.
	End float64
	// Text is the transcribed text for this span.
	Text string
}

// Result is a transcription with timing metadata.
type Result struct {
	// Text is the full transcript.
	Text string
	// Language is the detected language code.
	Language string
	// Duration is the audio duration in seconds as reported by the backend.
	Duration float64
	// Segments are the per-span transcriptions, in order.
	Segments []Segment
}

// Transcriber converts an audio file into text.
type Transcriber interface {
	// Transcribe returns the plain-text transcript of the audio file.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// TranscribeVerbose returns the transcript along with per-segment
	// timestamps.
	TranscribeVerbose(ctx context.Context, audioPath string) (Result, error)
}

// FormatWithTimestamps renders a verbose transcription as one line per
// segment, each prefixed with its time range:
//
//	[00:05 - 00:12] and that concludes the demo.
//
// A result with no segments falls back to the plain transcript text.
func FormatWithTimestamps(res Result) string {
	if len(res.Segments) == 0 {
		return res.Text
	}

	lines := make([]string, 0, len(res.Segments))
	for _, seg := range res.Segments {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s",
			formatTime(seg.Start), formatTime(seg.End), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}

// formatTime renders seconds as MM:SS.
func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
