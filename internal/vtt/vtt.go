// Package vtt parses caption-style transcripts, where each cue is a
// "HH:MM:SS.mmm --> HH:MM:SS.mmm" time line followed by one or more text
// lines and a blank separator.
package vtt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one cue with times converted to seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

var cueTime = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}\.\d{3}) --> (\d{2}:\d{2}:\d{2}\.\d{3})$`)

// Parse extracts the ordered cue list from a caption blob. Lines that do not
// match the cue-time pattern are skipped, so headers ("WEBVTT"), cue numbers
// and stray text never fail the parse. Multiple text lines of one cue are
// joined with a single space.
func Parse(text string) []Segment {
	var segs []Segment
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		m := cueTime.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		var texts []string
		for i++; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
			texts = append(texts, strings.TrimSpace(lines[i]))
		}
		segs = append(segs, Segment{
			Start: clockSeconds(m[1]),
			End:   clockSeconds(m[2]),
			Text:  strings.Join(texts, " "),
		})
	}
	return segs
}

// clockSeconds converts "HH:MM:SS.mmm" to seconds, treating the colon fields
// as base-60 digits.
func clockSeconds(s string) float64 {
	var total float64
	for _, part := range strings.Split(s, ":") {
		f, _ := strconv.ParseFloat(part, 64)
		total = total*60 + f
	}
	return total
}

// FormatClock renders seconds back as "HH:MM:SS.ss" for merged transcript
// lines.
func FormatClock(s float64) string {
	hrs := int(s) / 3600
	mins := (int(s) % 3600) / 60
	secs := s - float64(hrs*3600+mins*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hrs, mins, secs)
}
