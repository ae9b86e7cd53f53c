package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
	"github.com/WanderTerra/Automacao-monitoria/internal/diarize"
	"github.com/WanderTerra/Automacao-monitoria/internal/store"
	"github.com/WanderTerra/Automacao-monitoria/internal/transcribe"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

type fakePortal struct {
	loggedIn bool
	fail     map[string]bool
}

func (f *fakePortal) Login(context.Context) error {
	f.loggedIn = true
	return nil
}

func (f *fakePortal) Download(_ context.Context, callID, destDir string) (string, error) {
	if f.fail[callID] {
		return "", errors.New("recording response is not audio")
	}
	path := filepath.Join(destDir, callID+".wav")
	return path, os.WriteFile(path, []byte("RIFF"), 0o644)
}

type fakeTranscriber struct {
	vtt  string
	errs map[string]error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string, _ transcribe.Format) (string, error) {
	if err := f.errs[filepath.Base(audioPath)]; err != nil {
		return "", err
	}
	return f.vtt, nil
}

type fakeEvaluator struct {
	eval types.Evaluation
	err  error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, callID, _ string) (types.Evaluation, error) {
	if f.err != nil {
		return types.Evaluation{}, f.err
	}
	e := f.eval
	e.CallID = callID
	return e, nil
}

type fakeStore struct {
	calls []store.Call
	saved []string
}

func (f *fakeStore) PendingCalls(context.Context, config.CallFilter) ([]store.Call, error) {
	return f.calls, nil
}

func (f *fakeStore) ResolveCallID(_ context.Context, fileName string, mapping map[string]string) (string, error) {
	if id, ok := mapping[fileName]; ok {
		return id, nil
	}
	return "", store.ErrCallNotFound
}

func (f *fakeStore) SaveEvaluation(_ context.Context, callID, _, _ string, _ time.Time, _ types.Evaluation, _ string) (uint, error) {
	f.saved = append(f.saved, callID)
	return uint(len(f.saved)), nil
}

const sampleVTT = `WEBVTT

00:00:00.000 --> 00:00:02.000
Alô?

00:00:02.500 --> 00:00:06.000
Bom dia, meu nome é Ana, falo da Portes Advogados.
`

func newTestPipeline(t *testing.T, st CallStore, dl Downloader, tr Transcriber, ev Evaluator) *Pipeline {
	t.Helper()
	cfg := config.Config{
		WorkDir:  t.TempDir(),
		Carteira: "aguas",
	}
	lb, err := diarize.NewLabeler("rules", nil)
	require.NoError(t, err)
	p, err := New(cfg, st, dl, tr, lb, ev)
	require.NoError(t, err)
	return p
}

func TestDownloadRenamesAndMaps(t *testing.T) {
	st := &fakeStore{calls: []store.Call{
		{CallID: "1746441600.123", AgentID: "42", QueueID: "aguas sp",
			StartTime: time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)},
		{CallID: "1746445200.456", AgentID: "7", QueueID: "aguas mg",
			StartTime: time.Date(2025, 5, 5, 11, 0, 0, 0, time.Local)},
	}}
	dl := &fakePortal{fail: map[string]bool{"1746445200.456": true}}
	p := newTestPipeline(t, st, dl, nil, nil)

	n, err := p.Download(context.Background())
	require.NoError(t, err)
	assert.True(t, dl.loggedIn)
	assert.Equal(t, 1, n)

	want := "20250505_100000_Agente_42_Fila_aguas_sp.wav"
	assert.FileExists(t, filepath.Join(p.layout.Root, want))
	id, ok := p.mapping.CallID(want)
	assert.True(t, ok)
	assert.Equal(t, "1746441600.123", id)
}

func TestTranscribeWritesLabeledTranscript(t *testing.T) {
	p := newTestPipeline(t, &fakeStore{}, nil, &fakeTranscriber{vtt: sampleVTT}, nil)

	name := "20250505_100000_Agente_42_Fila_aguas.wav"
	require.NoError(t, os.WriteFile(filepath.Join(p.layout.Root, name), []byte("RIFF"), 0o644))

	n, err := p.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := filepath.Join(p.layout.Transcripts, "20250505_100000_Agente_42_Fila_aguas_diarizado.txt")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cliente: Alô?")
	assert.Contains(t, string(data), "Agente: Bom dia")

	assert.FileExists(t, filepath.Join(p.layout.DoneAudio, name))
	assert.NoFileExists(t, filepath.Join(p.layout.Root, name))
}

func TestTranscribeRoutesFailures(t *testing.T) {
	tr := &fakeTranscriber{
		vtt:  sampleVTT,
		errs: map[string]error{"bad.wav": errors.New("status 400")},
	}
	p := newTestPipeline(t, &fakeStore{}, nil, tr, nil)

	require.NoError(t, os.WriteFile(filepath.Join(p.layout.Root, "bad.wav"), []byte("RIFF"), 0o644))

	n, err := p.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.FileExists(t, filepath.Join(p.layout.FailedAudio, "bad.wav"))
	log, err := os.ReadFile(filepath.Join(p.layout.FailedAudio, "bad_erro.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "status 400")
}

func TestEvaluatePersistsAndMoves(t *testing.T) {
	st := &fakeStore{}
	ev := &fakeEvaluator{eval: types.Evaluation{
		Evaluator:    "MonitorGPT",
		PercentScore: 85,
		Items: types.Items{
			"Abordagem": {"Saudou o cliente": {Status: "Conforme", Weight: 1}},
		},
	}}
	p := newTestPipeline(t, st, nil, nil, ev)

	name := "20250505_100000_Agente_42_Fila_aguas_diarizado.txt"
	require.NoError(t, os.WriteFile(filepath.Join(p.layout.Transcripts, name),
		[]byte("[00:00:00.00 - 00:00:02.00] Cliente: Alô?"), 0o644))
	p.mapping.Put("20250505_100000_Agente_42_Fila_aguas.wav", "1746441600.123")

	n, err := p.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"1746441600.123"}, st.saved)

	assert.FileExists(t, filepath.Join(p.layout.Evaluated, name))
	require.Len(t, p.Rows(), 1)
	row := p.Rows()[0]
	assert.Equal(t, "1746441600.123", row.CallID)
	assert.Equal(t, "42", row.AgentID)
	assert.Equal(t, 85.0, row.Evaluation.PercentScore)
}

func TestEvaluateUnresolvedCallGoesToErrors(t *testing.T) {
	p := newTestPipeline(t, &fakeStore{}, nil, nil, &fakeEvaluator{})

	name := "20250505_100000_Agente_42_Fila_aguas_diarizado.txt"
	require.NoError(t, os.WriteFile(filepath.Join(p.layout.Transcripts, name), []byte("x"), 0o644))

	n, err := p.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.FileExists(t, filepath.Join(p.layout.FailedTranscripts, name))
}

func TestRunEndToEnd(t *testing.T) {
	st := &fakeStore{calls: []store.Call{
		{CallID: "1746441600.123", AgentID: "42", QueueID: "aguas",
			StartTime: time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)},
	}}
	ev := &fakeEvaluator{eval: types.Evaluation{
		Evaluator:    "MonitorGPT",
		PercentScore: 91.7,
		Items: types.Items{
			"Abordagem": {"Saudou o cliente": {Status: "Conforme", Weight: 1}},
		},
	}}
	p := newTestPipeline(t, st, &fakePortal{}, &fakeTranscriber{vtt: sampleVTT}, ev)

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []string{"1746441600.123"}, st.saved)

	stamp := time.Now().Format("20060102")
	assert.FileExists(t, filepath.Join(p.cfg.WorkDir, "avaliacoes_"+stamp+".csv"))
	assert.FileExists(t, filepath.Join(p.cfg.WorkDir, "custos_"+stamp+".csv"))
	assert.FileExists(t, filepath.Join(p.cfg.WorkDir, "consolidado_"+stamp+".xlsx"))
}
