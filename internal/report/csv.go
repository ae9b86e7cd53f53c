package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const dateLayout = "02/01/2006 15:04:05"

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func usd(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteEvaluationsCSV writes one row per evaluated call: call metadata,
// one status column per category, then the percent score.
func WriteEvaluationsCSV(path string, rows []Row, categories []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'

	header := append([]string{"data", "call_id", "agente", "fila"}, categories...)
	header = append(header, "pontuacao_percentual", "status")
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		rec := []string{r.When.Format(dateLayout), r.CallID, r.AgentID, r.Queue}
		for _, cat := range categories {
			rec = append(rec, CategoryStatus(r.Evaluation, cat))
		}
		status := "REPROVADA"
		if r.Evaluation.Approved() {
			status = "APROVADA"
		}
		rec = append(rec, percent(r.Evaluation.PercentScore), status)
		if err := w.Write(rec); err != nil {
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

// WriteCostCSV writes the per-call cost breakdown with a TOTAL footer row.
func WriteCostCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write([]string{"call_id", "duracao_min", "custo_transcricao_usd", "custo_avaliacao_usd", "custo_total_usd", "tempo_processamento_seg"}); err != nil {
		f.Close()
		return err
	}
	var totalMin, totalCost, totalProc float64
	for _, r := range rows {
		totalMin += r.Cost.DurationMin
		totalCost += r.Cost.Total
		totalProc += r.ProcessingSecs
		rec := []string{
			r.CallID,
			strconv.FormatFloat(r.Cost.DurationMin, 'f', 2, 64),
			usd(r.Cost.Transcription),
			usd(r.Cost.Evaluation),
			usd(r.Cost.Total),
			strconv.FormatFloat(r.ProcessingSecs, 'f', 1, 64),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	footer := []string{"TOTAL", strconv.FormatFloat(totalMin, 'f', 2, 64), "", "", usd(totalCost),
		strconv.FormatFloat(totalProc, 'f', 1, 64)}
	if err := w.Write(footer); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteQualityCSV lists transcripts whose completeness check failed.
func WriteQualityCSV(path string, issues []QualityIssue) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write([]string{"arquivo", "duracao_seg", "palavras", "motivo"}); err != nil {
		f.Close()
		return err
	}
	for _, q := range issues {
		rec := []string{
			q.File,
			strconv.FormatFloat(q.DurationSecs, 'f', 1, 64),
			fmt.Sprint(q.Words),
			q.Reason,
		}
		if err := w.Write(rec); err != nil {
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
