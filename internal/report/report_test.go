package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/WanderTerra/Automacao-monitoria/internal/audio"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

var testCategories = []string{"Abordagem", "Comunicação", "Falha Critica"}

func sampleRows() []Row {
	passing := types.Evaluation{
		CallID:       "1001.1",
		PercentScore: 85.0,
		Items: types.Items{
			"Abordagem": {
				"Saudou o cliente": {Status: "Conforme", Weight: 0.5},
			},
			"Comunicação": {
				"Linguagem adequada": {Status: "N/A", Weight: 0},
			},
		},
	}
	failing := types.Evaluation{
		CallID:       "1002.2",
		PercentScore: 40.0,
		Items: types.Items{
			"Abordagem": {
				"Saudou o cliente":        {Status: "Conforme", Weight: 0.25},
				"Confirmou com o titular": {Status: "Não Conforme", Weight: 0.25},
			},
		},
	}
	return []Row{
		{
			CallID:         "1001.1",
			When:           time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local),
			AgentID:        "42",
			Queue:          "aguas sp",
			Evaluation:     passing,
			Cost:           audio.Cost{DurationMin: 2, Transcription: 0.012, Evaluation: 0.002, Total: 0.014},
			ProcessingSecs: 12.0,
		},
		{
			CallID:         "1002.2",
			When:           time.Date(2025, 5, 5, 11, 0, 0, 0, time.Local),
			AgentID:        "42",
			Queue:          "aguas sp",
			Evaluation:     failing,
			Cost:           audio.Cost{DurationMin: 1, Transcription: 0.006, Evaluation: 0.002, Total: 0.008},
			ProcessingSecs: 7.5,
		},
	}
}

func TestCategoryStatus(t *testing.T) {
	rows := sampleRows()
	assert.Equal(t, "CONFORME", CategoryStatus(rows[0].Evaluation, "Abordagem"))
	assert.Equal(t, "NAO SE APLICA", CategoryStatus(rows[0].Evaluation, "Comunicação"))
	assert.Equal(t, "NAO SE APLICA", CategoryStatus(rows[0].Evaluation, "Falha Critica"))
	assert.Equal(t, "NAO CONFORME", CategoryStatus(rows[1].Evaluation, "Abordagem"))
}

func TestAggregate(t *testing.T) {
	s := Aggregate(sampleRows(), testCategories)
	assert.Equal(t, 2, s.TotalCalls)
	assert.Equal(t, 1, s.Approved)

	agents := s.Agents()
	require.Len(t, agents, 1)
	st := agents[0]
	assert.Equal(t, "42", st.AgentID)
	assert.Equal(t, 2, st.Calls)
	assert.Equal(t, 1, st.Approved)
	assert.InDelta(t, 62.5, st.AvgPercent(), 1e-9)
	assert.Equal(t, 1, st.NonConformant["Abordagem"])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteEvaluationsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avaliacoes.csv")
	require.NoError(t, WriteEvaluationsCSV(path, sampleRows(), testCategories))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"data", "call_id", "agente", "fila", "Abordagem", "Comunicação", "Falha Critica", "pontuacao_percentual", "status"}, rows[0])
	assert.Equal(t, "1001.1", rows[1][1])
	assert.Equal(t, "CONFORME", rows[1][4])
	assert.Equal(t, "85.0", rows[1][7])
	assert.Equal(t, "APROVADA", rows[1][8])
	assert.Equal(t, "REPROVADA", rows[2][8])
}

func TestWriteCostCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custos.csv")
	require.NoError(t, WriteCostCSV(path, sampleRows()))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	footer := rows[3]
	assert.Equal(t, "TOTAL", footer[0])
	assert.Equal(t, "3.00", footer[1])
	assert.Equal(t, "0.0220", footer[4])
	assert.Equal(t, "19.5", footer[5])
}

func TestWriteQualityCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qualidade.csv")
	issues := []QualityIssue{
		{File: "a.wav", DurationSecs: 90, Words: 40, Reason: "menos de 100 palavras em chamada longa"},
	}
	require.NoError(t, WriteQualityCSV(path, issues))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "a.wav", rows[1][0])
	assert.Equal(t, "40", rows[1][2])
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolidado.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleRows(), testCategories))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Avaliacoes", "Resumo"}, f.GetSheetList())

	evalRows, err := f.GetRows("Avaliacoes")
	require.NoError(t, err)
	require.Len(t, evalRows, 3)
	assert.Equal(t, "call_id", evalRows[0][1])
	assert.Equal(t, "1001.1", evalRows[1][1])

	sumRows, err := f.GetRows("Resumo")
	require.NoError(t, err)
	require.Len(t, sumRows, 2)
	assert.Equal(t, "42", sumRows[1][0])
}
