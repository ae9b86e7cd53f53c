package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Call{}))
	s := NewWithDB(db)
	require.NoError(t, s.Migrate())
	return s
}

func seedCalls(t *testing.T, s *Store) {
	t.Helper()
	base := time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)
	calls := []Call{
		{CallID: "c1", QueueID: "aguas_cobranca", AgentID: "7", Status: "Completada", StartTime: base, CallSecs: 120},
		{CallID: "c2", QueueID: "aguas_cobranca", AgentID: "7", Status: "Completada", StartTime: base.Add(time.Hour), CallSecs: 30},
		{CallID: "c3", QueueID: "aguasguariroba_x", AgentID: "8", Status: "Completada", StartTime: base, CallSecs: 200},
		{CallID: "c4", QueueID: "aguas_sul", AgentID: "9", Status: "Abandonada", StartTime: base, CallSecs: 300},
		{CallID: "c5", QueueID: "outra_fila", AgentID: "7", Status: "Completada", StartTime: base, CallSecs: 300},
		{CallID: "c6", QueueID: "aguas_sul", AgentID: "9", Status: "Completada", StartTime: base.Add(2 * time.Hour), CallSecs: 90},
	}
	require.NoError(t, s.db.Create(&calls).Error)
}

func TestPendingCallsFilters(t *testing.T) {
	s := testStore(t)
	seedCalls(t, s)

	calls, err := s.PendingCalls(context.Background(), config.CallFilter{
		QueuePrefix:  "aguas",
		QueueExclude: "aguasguariroba",
		MinCallSecs:  60,
	})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	// newest first
	assert.Equal(t, "c6", calls[0].CallID)
	assert.Equal(t, "c1", calls[1].CallID)
}

func TestPendingCallsDateWindow(t *testing.T) {
	s := testStore(t)
	seedCalls(t, s)

	from := time.Date(2025, 5, 5, 11, 30, 0, 0, time.Local)
	calls, err := s.PendingCalls(context.Background(), config.CallFilter{QueuePrefix: "aguas", From: from})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "c6", calls[0].CallID)
}

func TestResolveCallIDFromMapping(t *testing.T) {
	s := testStore(t)
	id, err := s.ResolveCallID(context.Background(), "whatever.wav", map[string]string{"whatever.wav": "c42"})
	require.NoError(t, err)
	assert.Equal(t, "c42", id)
}

func TestResolveCallIDUnparseableName(t *testing.T) {
	s := testStore(t)
	_, err := s.ResolveCallID(context.Background(), "nope.wav", nil)
	assert.ErrorIs(t, err, ErrCallNotFound)
}

func TestCallStartTime(t *testing.T) {
	s := testStore(t)
	seedCalls(t, s)

	got, err := s.CallStartTime(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)))

	_, err = s.CallStartTime(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCallNotFound)
}

func TestSaveEvaluation(t *testing.T) {
	s := testStore(t)
	e := types.Evaluation{
		CallID:       "c1",
		Evaluator:    "MonitorGPT",
		PercentScore: 83.3,
		Items: types.Items{
			"Abordagem": {
				"Atendeu prontamente": {Status: "Conforme", Weight: 0.5, Note: "rápido"},
			},
			"Falha Critica": {
				"Sem falha crítica": {Status: "Conforme", Weight: 0},
			},
		},
	}
	when := time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)

	id, err := s.SaveEvaluation(context.Background(), "c1", "7", "AGUAS", when, e, "Agente: olá")
	require.NoError(t, err)
	require.NotZero(t, id)

	var av Avaliacao
	require.NoError(t, s.db.First(&av, id).Error)
	assert.Equal(t, "APROVADA", av.StatusAvaliacao)
	assert.InDelta(t, 83.3, av.Pontuacao, 1e-9)
	assert.Equal(t, "AGUAS", av.Carteira)

	var items []ItemAvaliado
	require.NoError(t, s.db.Where("avaliacao_id = ?", id).Find(&items).Error)
	assert.Len(t, items, 2)

	var tr Transcricao
	require.NoError(t, s.db.Where("avaliacao_id = ?", id).First(&tr).Error)
	assert.Equal(t, "Agente: olá", tr.Conteudo)
}

func TestSaveEvaluationReprovada(t *testing.T) {
	s := testStore(t)
	e := types.Evaluation{
		PercentScore: 40,
		Items: types.Items{
			"Abordagem": {"i": {Status: "Não Conforme", Weight: 1}},
		},
	}
	id, err := s.SaveEvaluation(context.Background(), "c2", "7", "AGUAS", time.Now(), e, "")
	require.NoError(t, err)

	var av Avaliacao
	require.NoError(t, s.db.First(&av, id).Error)
	assert.Equal(t, "REPROVADA", av.StatusAvaliacao)

	var count int64
	s.db.Model(&Transcricao{}).Where("avaliacao_id = ?", id).Count(&count)
	assert.Zero(t, count)
}

func TestListEvaluations(t *testing.T) {
	s := testStore(t)
	seedCalls(t, s)
	e := types.Evaluation{
		PercentScore: 90,
		Items: types.Items{
			"Abordagem": {"Saudou o cliente": {Status: "Conforme", Weight: 0.5}},
		},
	}
	may := time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)
	june := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	_, err := s.SaveEvaluation(context.Background(), "c1", "7", "AGUAS", may, e, "")
	require.NoError(t, err)
	_, err = s.SaveEvaluation(context.Background(), "c2", "8", "AGUAS", june, e, "")
	require.NoError(t, err)

	recs, err := s.ListEvaluations(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c1", recs[0].Avaliacao.CallID)
	require.Len(t, recs[0].Items, 1)

	rebuilt := recs[0].Evaluation()
	assert.InDelta(t, 90.0, rebuilt.PercentScore, 1e-9)
	assert.Equal(t, "CONFORME", rebuilt.Items["Abordagem"]["Saudou o cliente"].Status)

	mayOnly, err := s.ListEvaluations(context.Background(), may, june)
	require.NoError(t, err)
	require.Len(t, mayOnly, 1)
	assert.Equal(t, "c1", mayOnly[0].Avaliacao.CallID)
}

func TestCallQueues(t *testing.T) {
	s := testStore(t)
	seedCalls(t, s)

	queues, err := s.CallQueues(context.Background(), []string{"c1", "missing"})
	require.NoError(t, err)
	require.Contains(t, queues, "c1")
	assert.NotContains(t, queues, "missing")

	empty, err := s.CallQueues(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
