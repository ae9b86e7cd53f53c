package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsNA("N/A"))
	assert.True(t, IsNA("na"))
	assert.True(t, IsNA(`N\A`))
	assert.True(t, IsNA("n. a."))
	assert.False(t, IsNA("Conforme"))

	assert.True(t, IsConforme("Conforme"))
	assert.True(t, IsConforme(" CONFORME "))
	assert.False(t, IsConforme("Não Conforme"))

	assert.True(t, IsNaoConforme("Não Conforme"))
	assert.True(t, IsNaoConforme("NAO CONFORME"))
	assert.False(t, IsNaoConforme("Conforme"))

	assert.True(t, IsCritical("falha critica"))
	assert.True(t, IsCritical(" Falha Critica "))
	assert.False(t, IsCritical("Abordagem"))
}

func TestDBResult(t *testing.T) {
	assert.Equal(t, "CONFORME", DBResult("Conforme"))
	assert.Equal(t, "NAO CONFORME", DBResult("Não Conforme"))
	assert.Equal(t, "NAO SE APLICA", DBResult("N/A"))
	assert.Equal(t, "NAO SE APLICA", DBResult("anything else"))
}

func TestApproved(t *testing.T) {
	assert.True(t, Evaluation{PercentScore: 70}.Approved())
	assert.True(t, Evaluation{PercentScore: 92.5}.Approved())
	assert.False(t, Evaluation{PercentScore: 69.9}.Approved())
}

func TestParseRecordingName(t *testing.T) {
	info, err := ParseRecordingName("20250505_143210_Agente_1042_Fila_aguas_cobranca.wav")
	require.NoError(t, err)
	assert.Equal(t, "1042", info.AgentID)
	assert.Equal(t, "aguas cobranca", info.Queue)
	assert.Equal(t, time.Date(2025, 5, 5, 14, 32, 10, 0, time.Local), info.When)
}

func TestParseRecordingNameDiarizedSuffix(t *testing.T) {
	info, err := ParseRecordingName("/tmp/x/20250505_143210_Agente_7_Fila_aguas_diarizado.txt")
	require.NoError(t, err)
	assert.Equal(t, "7", info.AgentID)
	assert.Equal(t, "aguas", info.Queue)
}

func TestParseRecordingNameRejectsOther(t *testing.T) {
	_, err := ParseRecordingName("porque.wav")
	assert.Error(t, err)
}
