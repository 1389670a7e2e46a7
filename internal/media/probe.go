// Package media provides metadata probing for video and audio files.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
)

// Static errors for media operations.
var (
	// ErrProbeFailed is returned when ffprobe exits with an error.
	ErrProbeFailed = errors.New("media: probe failed")
	// ErrNoDuration is returned when ffprobe output contains no parseable duration.
	ErrNoDuration = errors.New("media: no duration in probe output")
)

// VideoStreamInfo describes the first video stream of a file.
type VideoStreamInfo struct {
	Codec  string  `json:"codec"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

// AudioStreamInfo describes the first audio stream of a file.
type AudioStreamInfo struct {
	Codec      string `json:"codec"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Info is the probed metadata of a media file.
type Info struct {
	DurationSec float64         `json:"duration"`
	SizeBytes   int64           `json:"size"`
	BitRate     int64           `json:"bitrate"`
	FormatName  string          `json:"format_name"`
	Video       VideoStreamInfo `json:"video"`
	Audio       AudioStreamInfo `json:"audio"`
}

// Prober extracts media metadata using the ffprobe CLI.
type Prober struct {
	runner      executor.Runner
	ffprobePath string
}

// NewProber creates a Prober.
// If ffprobePath is empty, it defaults to "ffprobe" (found via PATH).
func NewProber(runner executor.Runner, ffprobePath string) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{runner: runner, ffprobePath: ffprobePath}
}

// Duration returns the total duration of a media file in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	res, err := p.runner.Run(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		if errors.Is(err, executor.ErrToolNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoDuration, strings.TrimSpace(res.Stdout))
	}

	return duration, nil
}

// ffprobe JSON document shape for -show_format -show_streams.
type probeDocument struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		BitRate    string `json:"bit_rate"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// Probe returns duration, size and stream metadata for a media file.
// Only the first video and first audio stream are reported.
func (p *Prober) Probe(ctx context.Context, path string) (Info, error) {
	res, err := p.runner.Run(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		if errors.Is(err, executor.ErrToolNotFound) {
			return Info{}, err
		}
		return Info{}, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	var doc probeDocument
	if err := json.Unmarshal([]byte(res.Stdout), &doc); err != nil {
		return Info{}, fmt.Errorf("media: parse probe output: %w", err)
	}

	info := Info{
		DurationSec: parseFloatField(doc.Format.Duration),
		SizeBytes:   parseIntField(doc.Format.Size),
		BitRate:     parseIntField(doc.Format.BitRate),
		FormatName:  doc.Format.FormatName,
	}

	haveVideo, haveAudio := false, false
	for _, st := range doc.Streams {
		switch {
		case st.CodecType == "video" && !haveVideo:
			info.Video = VideoStreamInfo{
				Codec:  st.CodecName,
				Width:  st.Width,
				Height: st.Height,
				FPS:    parseFrameRate(st.RFrameRate),
			}
			haveVideo = true
		case st.CodecType == "audio" && !haveAudio:
			info.Audio = AudioStreamInfo{
				Codec:      st.CodecName,
				SampleRate: int(parseIntField(st.SampleRate)),
				Channels:   st.Channels,
			}
			haveAudio = true
		}
	}

	return info, nil
}

func parseFloatField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntField(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFrameRate parses ffprobe frame rates like "30/1", "30000/1001"
// or a plain "29.97".
func parseFrameRate(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n := parseFloatField(num)
		d := parseFloatField(den)
		if d == 0 {
			return 0
		}
		return n / d
	}
	return parseFloatField(s)
}
