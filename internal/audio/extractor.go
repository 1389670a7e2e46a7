package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
)

// Options configures the speech segment extraction behavior.
// Values are fixed per deployment, not per request.
type Options struct {
	// NoiseThreshDB is the volume threshold in dBFS below which audio is
	// considered silence. Default: -30 dB.
	NoiseThreshDB float64

	// MinSilenceSec is the minimum silence duration in seconds for a
	// silence interval to be reported. Default: 0.5 seconds.
	MinSilenceSec float64

	// PaddingSec is added before and after each detected speech segment
	// so word onsets are not clipped. Default: 0.2 seconds.
	PaddingSec float64
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		NoiseThreshDB: -30,
		MinSilenceSec: 0.5,
		PaddingSec:    0.2,
	}
}

// DurationProber reports the total duration of a media file in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Extractor runs the full speech segment pipeline: detect silences, invert
// them into speech intervals, pad, and stitch the padded segments into a
// reduced audio file. It holds no per-request state; every call recomputes
// duration and intervals from its own input.
type Extractor struct {
	runner     executor.Runner
	prober     DurationProber
	detector   *SilenceDetector
	stitcher   *Stitcher
	ffmpegPath string
	opts       Options
	logger     *slog.Logger
}

// NewExtractor creates an Extractor.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewExtractor(runner executor.Runner, prober DurationProber, ffmpegPath string, opts Options, logger *slog.Logger) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		runner:     runner,
		prober:     prober,
		detector:   NewSilenceDetector(runner, ffmpegPath, opts.NoiseThreshDB, opts.MinSilenceSec, logger),
		stitcher:   NewStitcher(runner, ffmpegPath, logger),
		ffmpegPath: ffmpegPath,
		opts:       opts,
		logger:     logger,
	}
}

// Reduce produces a speech-only version of src at dst and returns the path
// of the audio to use downstream. The returned path is src itself whenever
// reduction is not possible or not worthwhile (no silence detected, silence
// spans the whole clip, stitching failed); the caller keeps ownership of
// src either way and must not assume the returned path differs from it.
func (e *Extractor) Reduce(ctx context.Context, src, dst string) (string, error) {
	duration, err := e.prober.Duration(ctx, src)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}

	silences, err := e.detector.Detect(ctx, src)
	if err != nil {
		return "", fmt.Errorf("detect silences: %w", err)
	}

	speech := Invert(silences, duration)
	if len(speech) == 0 {
		// Silence spans the entire clip; nothing to stitch.
		e.logger.Info("no speech detected, keeping original audio",
			slog.String("src", src),
			slog.Float64("duration_sec", duration),
		)
		return src, nil
	}

	padded := Pad(speech, e.opts.PaddingSec, duration)

	out, err := e.stitcher.Stitch(ctx, src, padded, dst)
	if err != nil {
		return "", fmt.Errorf("stitch segments: %w", err)
	}

	e.logger.Info("speech segments extracted",
		slog.String("src", src),
		slog.Int("silence_intervals", len(silences)),
		slog.Int("speech_segments", len(padded)),
		slog.Float64("duration_sec", duration),
		slog.Float64("retained_sec", TotalDuration(padded)),
	)

	return out, nil
}

// ExtractAudio extracts the audio track of a video file into a mono 16-bit
// PCM WAV at 16 kHz, the format the transcription backend expects.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	_, err := e.runner.Run(ctx, e.ffmpegPath,
		"-y",
		"-hide_banner",
		"-i", videoPath,
		"-vn",
		"-acodec", outputCodec,
		"-ar", outputSampleRate,
		"-ac", outputChannels,
		audioPath,
	)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	if _, err := os.Stat(audioPath); err != nil {
		return fmt.Errorf("extract audio: output file not created: %w", err)
	}

	return nil
}
