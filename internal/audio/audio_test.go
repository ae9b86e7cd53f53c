package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
)

// writeWAV writes a minimal PCM wav file with the given number of frames.
func writeWAV(t *testing.T, path string, sampleRate, frames int) {
	t.Helper()
	data := make([]byte, frames*2) // 16-bit mono
	var buf []byte
	put := func(b ...byte) { buf = append(buf, b...) }
	u32 := func(v uint32) { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); put(b...) }
	u16 := func(v uint16) { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); put(b...) }

	put([]byte("RIFF")...)
	u32(uint32(36 + len(data)))
	put([]byte("WAVE")...)
	put([]byte("fmt ")...)
	u32(16)
	u16(1) // PCM
	u16(1) // mono
	u32(uint32(sampleRate))
	u32(uint32(sampleRate * 2))
	u16(2)
	u16(16)
	put([]byte("data")...)
	u32(uint32(len(data)))
	put(data...)

	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call.wav")
	writeWAV(t, path, 8000, 8000*3) // 3 seconds at 8 kHz

	secs, err := Duration(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, secs, 0.01)
}

func TestDurationRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("not audio at all"), 0o644))
	_, err := Duration(path)
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	p := config.Pricing{TranscribePerMinUSD: 0.006, EvalPerCallUSD: 0.002}

	c := Estimate(120, p, true)
	assert.InDelta(t, 2.0, c.DurationMin, 1e-9)
	assert.InDelta(t, 0.012, c.Transcription, 1e-9)
	assert.InDelta(t, 0.002, c.Evaluation, 1e-9)
	assert.InDelta(t, 0.014, c.Total, 1e-9)

	c = Estimate(120, p, false)
	assert.Zero(t, c.Evaluation)
	assert.InDelta(t, 0.012, c.Total, 1e-9)
}
