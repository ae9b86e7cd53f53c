// Package audio reads recording durations and prices a processed call.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
)

// Duration returns the length of a WAV recording in seconds, read from the
// container header.
func Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%s: not a valid wav file", path)
	}
	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return d.Seconds(), nil
}

// Cost is the estimated spend for one call.
type Cost struct {
	DurationMin   float64
	Transcription float64
	Evaluation    float64
	Total         float64
}

// Estimate prices a call: duration in minutes times the per-minute
// transcription rate, plus the flat evaluation fee when the call was scored.
func Estimate(durationSecs float64, p config.Pricing, evaluated bool) Cost {
	c := Cost{DurationMin: durationSecs / 60}
	c.Transcription = c.DurationMin * p.TranscribePerMinUSD
	if evaluated {
		c.Evaluation = p.EvalPerCallUSD
	}
	c.Total = c.Transcription + c.Evaluation
	return c
}
