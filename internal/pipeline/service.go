// Package pipeline orchestrates one video processing request: probe,
// audio extraction, silence-aware reduction, transcription and
// summarization, all inside a request-scoped workspace.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeff99jackson99/videoextractor/internal/media"
	"github.com/jeff99jackson99/videoextractor/internal/storage"
	"github.com/jeff99jackson99/videoextractor/internal/summarization"
	"github.com/jeff99jackson99/videoextractor/internal/transcription"
)

// ErrVideoNotFound is returned when the referenced video file does not exist.
var ErrVideoNotFound = errors.New("pipeline: video file not found")

// AudioExtractor produces transcription-ready audio from a video file.
type AudioExtractor interface {
	// ExtractAudio extracts the audio track of videoPath into audioPath
	// as mono 16-bit PCM at 16 kHz.
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error

	// Reduce writes a speech-only version of src to dst and returns the
	// path to use downstream, which is src itself when reduction was
	// skipped or fell back.
	Reduce(ctx context.Context, src, dst string) (string, error)
}

// Prober extracts media metadata.
type Prober interface {
	Probe(ctx context.Context, path string) (media.Info, error)
}

// Result is the outcome of processing one video.
type Result struct {
	// Transcript is the speech-to-text output.
	Transcript string
	// Summary is the generated summary.
	Summary string
	// ProcessingTime is the wall-clock processing duration in seconds.
	ProcessingTime float64
	// VideoDuration is the source video duration in seconds.
	VideoDuration float64
	// Info is the probed video metadata.
	Info media.Info
	// ReportURL is the uploaded report location, when S3 is configured.
	ReportURL string
}

// Service runs the processing pipeline. It keeps no state between
// requests; every invocation gets its own workspace and recomputes
// everything from its own input.
type Service struct {
	store       storage.Storage
	prober      Prober
	extractor   AudioExtractor
	transcriber transcription.Transcriber
	summarizer  summarization.Summarizer
	logger      *slog.Logger
}

// NewService creates a pipeline Service.
func NewService(
	store storage.Storage,
	prober Prober,
	extractor AudioExtractor,
	transcriber transcription.Transcriber,
	summarizer summarization.Summarizer,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		prober:      prober,
		extractor:   extractor,
		transcriber: transcriber,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// ProcessUpload saves an uploaded video into a fresh workspace and
// processes it. The workspace is removed before returning, on every path.
func (s *Service) ProcessUpload(ctx context.Context, filename string, file io.Reader, typ summarization.Type) (Result, error) {
	ws, err := s.store.NewWorkspace(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("allocate workspace: %w", err)
	}
	defer func() { _ = ws.Close() }()

	videoPath, err := ws.SaveFile("input_"+sanitizeName(filename), file)
	if err != nil {
		return Result{}, fmt.Errorf("save upload: %w", err)
	}

	return s.process(ctx, ws, videoPath, typ)
}

// ProcessPath processes a video already on disk. The source file is only
// read; all intermediate artifacts go into a fresh workspace that is
// removed before returning.
func (s *Service) ProcessPath(ctx context.Context, videoPath string, typ summarization.Type) (Result, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoPath)
	}

	ws, err := s.store.NewWorkspace(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("allocate workspace: %w", err)
	}
	defer func() { _ = ws.Close() }()

	return s.process(ctx, ws, videoPath, typ)
}

func (s *Service) process(ctx context.Context, ws *storage.Workspace, videoPath string, typ summarization.Type) (Result, error) {
	started := time.Now()

	info, err := s.prober.Probe(ctx, videoPath)
	if err != nil {
		return Result{}, fmt.Errorf("probe video: %w", err)
	}

	audioPath := ws.Path("audio.wav")
	if err := s.extractor.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return Result{}, err
	}

	reducedPath, err := s.extractor.Reduce(ctx, audioPath, ws.Path("audio_speech.wav"))
	if err != nil {
		return Result{}, err
	}

	transcript, err := s.transcriber.Transcribe(ctx, reducedPath)
	if err != nil {
		return Result{}, err
	}

	summary, err := s.summarizer.Summarize(ctx, transcript, typ)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Transcript:     transcript,
		Summary:        summary,
		ProcessingTime: time.Since(started).Seconds(),
		VideoDuration:  info.DurationSec,
		Info:           info,
	}
	res.ReportURL = s.uploadReport(ctx, videoPath, res)

	s.logger.Info("video processed",
		slog.String("video", filepath.Base(videoPath)),
		slog.Float64("video_duration_sec", res.VideoDuration),
		slog.Float64("processing_time_sec", res.ProcessingTime),
		slog.Int("transcript_chars", len(transcript)),
	)

	return res, nil
}

// uploadReport pushes the combined report to S3 when configured. Upload
// failures are logged and swallowed; the HTTP response still carries the
// full results.
func (s *Service) uploadReport(ctx context.Context, videoPath string, res Result) string {
	name := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	key := fmt.Sprintf("reports/%s_%d.md", sanitizeName(name), time.Now().Unix())

	url, err := s.store.UploadReport(ctx, key, strings.NewReader(renderReport(name, res)))
	if err != nil {
		if !errors.Is(err, storage.ErrS3NotConfigured) {
			s.logger.Warn("report upload failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return ""
	}
	return url
}

// renderReport builds the downloadable markdown report for a processed video.
func renderReport(name string, res Result) string {
	return fmt.Sprintf(`# Video Analysis Report: %s

## Summary
%s

## Full Transcript
%s

---
Generated by Video Extractor
Processing Time: %.1fs
Video Duration: %.1fs
`, name, res.Summary, res.Transcript, res.ProcessingTime, res.VideoDuration)
}

// sanitizeName strips path separators and whitespace from user-supplied
// file names before they are used inside the workspace.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "video"
	}
	return name
}
