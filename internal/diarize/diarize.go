// Package diarize assigns speakers to transcript segments, either by merging
// an external diarization track list or by relabeling a finished transcript
// with one of two interchangeable labelers.
package diarize

import (
	"fmt"
	"strings"

	"github.com/WanderTerra/Automacao-monitoria/internal/vtt"
)

// UnknownSpeaker labels segments no diarization track overlaps.
const UnknownSpeaker = "Desconhecido"

// Track is one speaker-attributed time range from a diarization backend.
type Track struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Assign picks the track with the greatest temporal overlap against the
// segment. The comparison is strict, so an exact tie keeps the first-seen
// track; the ordering of the input is the tie-break and callers must pass
// tracks in a stable order.
func Assign(seg vtt.Segment, tracks []Track) string {
	best := 0.0
	speaker := UnknownSpeaker
	for _, t := range tracks {
		overlap := min(seg.End, t.End) - max(seg.Start, t.Start)
		if overlap > best {
			best = overlap
			speaker = t.Speaker
		}
	}
	return speaker
}

// Merge joins a captioned transcript with diarization tracks into
// "[start - end] Speaker: text" lines, one per cue.
func Merge(vttText string, tracks []Track) string {
	segs := vtt.Parse(vttText)
	lines := make([]string, 0, len(segs))
	for _, seg := range segs {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s: %s",
			vtt.FormatClock(seg.Start), vtt.FormatClock(seg.End), Assign(seg, tracks), seg.Text))
	}
	return strings.Join(lines, "\n")
}
