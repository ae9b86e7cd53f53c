package transcribe

import (
	"fmt"
	"strings"
)

// Completeness thresholds: a normal collection call runs 2-3 words per
// second, so anything far below that usually means the model stopped early.
const (
	minWordsPerSec = 1.5
	minCharsPerSec = 9.0
	longCallSecs   = 60.0
	minLongWords   = 100
)

// CheckCompleteness flags a transcript that looks too short for its audio.
// It is a soft signal only: the pipeline logs it and lists it in the quality
// report, never blocks on it.
func CheckCompleteness(text string, durationSecs float64) (string, bool) {
	if durationSecs <= 0 {
		return "", false
	}
	words := len(strings.Fields(text))
	wordRate := float64(words) / durationSecs
	charRate := float64(len(text)) / durationSecs

	switch {
	case durationSecs > longCallSecs && words < minLongWords:
		return fmt.Sprintf("áudio de %.1fs tem apenas %d palavras", durationSecs, words), true
	case wordRate < minWordsPerSec:
		return fmt.Sprintf("taxa baixa: %.2f palavras/seg", wordRate), true
	case charRate < minCharsPerSec:
		return fmt.Sprintf("poucos caracteres por segundo: %.2f", charRate), true
	}
	return "", false
}
