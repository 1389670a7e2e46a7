// Package audio implements the speech segment extractor: silence detection,
// interval inversion, segment padding and silence-aware re-stitching of an
// audio stream into a reduced-length file.
package audio

import "sort"

// Interval is a half-open time range in seconds within an audio stream.
// Invariant: 0 <= Start <= End.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the length of the interval in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Invert converts silence intervals into speech intervals within [0, total].
// The silence intervals are sorted defensively before the walk; overlapping
// or nested silences are handled by never moving the cursor backwards.
// Zero-length speech intervals are never emitted.
func Invert(silence []Interval, total float64) []Interval {
	sorted := make([]Interval, len(silence))
	copy(sorted, silence)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var speech []Interval
	cursor := 0.0
	for _, s := range sorted {
		if cursor < s.Start {
			speech = append(speech, Interval{Start: cursor, End: s.Start})
		}
		if s.End > cursor {
			cursor = s.End
		}
	}
	if cursor < total {
		speech = append(speech, Interval{Start: cursor, End: total})
	}
	return speech
}

// Pad expands each segment by padding seconds on both sides, clamped to
// [0, total]. Adjacent padded segments may overlap; overlaps are passed
// through unmerged, which duplicates a short stretch of audio at the seam
// rather than corrupting the output.
func Pad(segments []Interval, padding, total float64) []Interval {
	padded := make([]Interval, 0, len(segments))
	for _, seg := range segments {
		start := seg.Start - padding
		if start < 0 {
			start = 0
		}
		end := seg.End + padding
		if end > total {
			end = total
		}
		padded = append(padded, Interval{Start: start, End: end})
	}
	return padded
}

// TotalDuration returns the summed duration of the intervals.
func TotalDuration(intervals []Interval) float64 {
	var total float64
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}
