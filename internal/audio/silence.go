package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
)

// SilenceDetector finds silence intervals in an audio file using ffmpeg's
// silencedetect filter.
type SilenceDetector struct {
	runner     executor.Runner
	ffmpegPath string
	// noiseDB is the volume threshold in dBFS below which audio is
	// considered silence.
	noiseDB float64
	// minDuration is the minimum silence length in seconds to report.
	minDuration float64
	logger      *slog.Logger
}

// NewSilenceDetector creates a SilenceDetector.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewSilenceDetector(runner executor.Runner, ffmpegPath string, noiseDB, minDuration float64, logger *slog.Logger) *SilenceDetector {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SilenceDetector{
		runner:      runner,
		ffmpegPath:  ffmpegPath,
		noiseDB:     noiseDB,
		minDuration: minDuration,
		logger:      logger,
	}
}

// Detect runs silencedetect over the input and returns the silence intervals
// in detection order (ascending by start).
//
// If ffmpeg is missing it returns executor.ErrToolNotFound. If ffmpeg ran but
// exited with an error, Detect returns an empty set and no error: the caller
// falls back to processing the whole audio unsegmented.
func (d *SilenceDetector) Detect(ctx context.Context, inputPath string) ([]Interval, error) {
	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g", d.noiseDB, d.minDuration)

	// silencedetect reports on stderr; the null muxer discards the stream.
	res, err := d.runner.Run(ctx, d.ffmpegPath,
		"-hide_banner",
		"-i", inputPath,
		"-af", filter,
		"-f", "null",
		"-",
	)
	if err != nil {
		if errors.Is(err, executor.ErrToolNotFound) {
			return nil, err
		}
		d.logger.Warn("silence detection failed, treating whole clip as speech",
			slog.String("input", inputPath),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return parseSilenceLog(res.Stderr), nil
}

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
)

// parseSilenceLog scans silencedetect output line by line, pairing each
// silence_start marker with the next silence_end. A dangling start with no
// matching end is discarded; lines whose timestamp fails to parse are
// skipped without aborting the scan.
func parseSilenceLog(log string) []Interval {
	var intervals []Interval

	var pendingStart float64
	hasStart := false

	for _, line := range strings.Split(log, "\n") {
		if m := silenceStartRe.FindStringSubmatch(line); len(m) > 1 {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			// ffmpeg occasionally reports a tiny negative start at the
			// very beginning of a stream.
			if val < 0 {
				val = 0
			}
			pendingStart = val
			hasStart = true
		}

		if m := silenceEndRe.FindStringSubmatch(line); len(m) > 1 && hasStart {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			intervals = append(intervals, Interval{Start: pendingStart, End: val})
			hasStart = false
		}
	}

	return intervals
}
