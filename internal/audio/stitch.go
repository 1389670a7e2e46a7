package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
)

// Output encoding for stitched audio, matching what the transcription
// backend expects as input.
const (
	outputChannels   = "1"
	outputSampleRate = "16000"
	outputCodec      = "pcm_s16le"
)

// Stitcher trims speech segments out of a source audio file and
// concatenates them, in order, into a single reduced output file.
type Stitcher struct {
	runner     executor.Runner
	ffmpegPath string
	logger     *slog.Logger
}

// NewStitcher creates a Stitcher.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewStitcher(runner executor.Runner, ffmpegPath string, logger *slog.Logger) *Stitcher {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stitcher{runner: runner, ffmpegPath: ffmpegPath, logger: logger}
}

// Stitch writes the concatenation of the given segments of src to dst and
// returns the path of the resulting audio.
//
// With no segments the source is returned unchanged rather than producing a
// zero-length file. If ffmpeg ran but failed, or produced no output file,
// Stitch falls back to the original source so the caller never loses audio
// to a failed optimization. Only executor.ErrToolNotFound is a hard error.
func (s *Stitcher) Stitch(ctx context.Context, src string, segments []Interval, dst string) (string, error) {
	if len(segments) == 0 {
		return src, nil
	}

	_, err := s.runner.Run(ctx, s.ffmpegPath,
		"-y",
		"-hide_banner",
		"-i", src,
		"-filter_complex", buildSegmentFilter(segments),
		"-map", "[aout]",
		"-ac", outputChannels,
		"-ar", outputSampleRate,
		"-c:a", outputCodec,
		dst,
	)
	if err != nil {
		if errors.Is(err, executor.ErrToolNotFound) {
			return "", err
		}
		s.logger.Warn("segment stitching failed, keeping unsegmented audio",
			slog.String("src", src),
			slog.Int("segments", len(segments)),
			slog.String("error", err.Error()),
		)
		return src, nil
	}

	if _, err := os.Stat(dst); err != nil {
		s.logger.Warn("stitched output missing, keeping unsegmented audio",
			slog.String("dst", dst),
		)
		return src, nil
	}

	return dst, nil
}

// buildSegmentFilter builds an ffmpeg filter graph that trims each segment
// out of the input, resets its timestamps, and concatenates the pieces:
//
//	[0:a]atrim=start=4:end=6,asetpts=PTS-STARTPTS[a0];...;[a0][a1]concat=n=2:v=0:a=1[aout]
func buildSegmentFilter(segments []Interval) string {
	var b strings.Builder

	for i, seg := range segments {
		fmt.Fprintf(&b, "[0:a]atrim=start=%.3f:end=%.3f,asetpts=PTS-STARTPTS[a%d];",
			seg.Start, seg.End, i)
	}
	for i := range segments {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=0:a=1[aout]", len(segments))

	return b.String()
}
