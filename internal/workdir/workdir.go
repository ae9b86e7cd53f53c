// Package workdir manages the on-disk layout of a monitoring run:
// where pending audio waits, where processed files land, and where
// failed items are parked with their error logs.
package workdir

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Layout holds the run folders rooted at a portfolio work dir.
type Layout struct {
	// Root holds the pending .wav files.
	Root string
	// DoneAudio receives audio files that were transcribed.
	DoneAudio string
	// Transcripts receives labeled transcripts awaiting evaluation.
	Transcripts string
	// Evaluated receives transcripts whose evaluation was persisted.
	Evaluated string
	// FailedAudio receives audio that could not be transcribed.
	FailedAudio string
	// FailedTranscripts receives transcripts that could not be evaluated.
	FailedTranscripts string
}

// New builds the layout under root for the given portfolio and creates
// every folder.
func New(root, carteira string) (Layout, error) {
	l := Layout{
		Root:              root,
		DoneAudio:         filepath.Join(root, "Audios_transcritos"),
		Transcripts:       filepath.Join(root, "Transcricoes_"+carteira),
		Evaluated:         filepath.Join(root, "Transcricoes_avaliadas"),
		FailedAudio:       filepath.Join(root, "Audios_erros"),
		FailedTranscripts: filepath.Join(root, "Transcricoes_erros"),
	}
	for _, dir := range []string{l.Root, l.DoneAudio, l.Transcripts, l.Evaluated, l.FailedAudio, l.FailedTranscripts} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Layout{}, err
		}
	}
	return l, nil
}

// PendingAudio lists the .wav files waiting in the root folder.
func (l Layout) PendingAudio() ([]string, error) {
	return listExt(l.Root, ".wav")
}

// PendingTranscripts lists the .txt transcripts waiting for evaluation.
func (l Layout) PendingTranscripts() ([]string, error) {
	return listExt(l.Transcripts, ".txt")
}

func listExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// Move relocates path into dir, keeping the base name. A same-named file
// already in dir is overwritten.
func Move(path, dir string) (string, error) {
	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err == nil {
		return dest, nil
	}
	// Rename fails across filesystems, fall back to copy+remove.
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()
	dst, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return dest, os.Remove(path)
}

// Fail moves path into dir and writes a sibling "<name>_erro.txt" with
// the failure reason.
func Fail(path, dir string, cause error) (string, error) {
	dest, err := Move(path, dir)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	logPath := filepath.Join(dir, base+"_erro.txt")
	msg := fmt.Sprintf("%s\n%v\n", time.Now().Format(time.RFC3339), cause)
	return dest, os.WriteFile(logPath, []byte(msg), 0o644)
}

// MarkStart drops a "<name>.start" sidecar next to path so an interrupted
// run can be detected. MarkEnd replaces it with "<name>.end".
func MarkStart(path string) error {
	return os.WriteFile(sidecar(path, ".start"), []byte(time.Now().Format(time.RFC3339)+"\n"), 0o644)
}

func MarkEnd(path string) error {
	os.Remove(sidecar(path, ".start"))
	return os.WriteFile(sidecar(path, ".end"), []byte(time.Now().Format(time.RFC3339)+"\n"), 0o644)
}

// Interrupted reports whether path has a .start sidecar without a .end,
// meaning a previous run died while processing it.
func Interrupted(path string) bool {
	if _, err := os.Stat(sidecar(path, ".start")); err != nil {
		return false
	}
	_, err := os.Stat(sidecar(path, ".end"))
	return err != nil
}

func sidecar(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Mapping associates recording file names with portal call ids, persisted
// as a two-column CSV so later runs can skip the database lookup.
type Mapping struct {
	path    string
	entries map[string]string
}

// LoadMapping reads the mapping CSV, tolerating a missing file.
func LoadMapping(path string) (*Mapping, error) {
	m := &Mapping{path: path, entries: map[string]string{}}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(row[0], "arquivo") {
			continue
		}
		m.entries[row[0]] = row[1]
	}
	return m, nil
}

// CallID returns the mapped call id for a file name, if any.
func (m *Mapping) CallID(fileName string) (string, bool) {
	id, ok := m.entries[fileName]
	return id, ok
}

// Put records a file-to-call association in memory.
func (m *Mapping) Put(fileName, callID string) {
	m.entries[fileName] = callID
}

// Entries returns a copy of the mapping, for lookups by other packages.
func (m *Mapping) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Save rewrites the CSV with a header row.
func (m *Mapping) Save() error {
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"arquivo", "call_id"}); err != nil {
		f.Close()
		return err
	}
	for name, id := range m.entries {
		if err := w.Write([]string{name, id}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
