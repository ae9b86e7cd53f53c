package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes the consolidated run workbook: an "Avaliacoes" sheet
// mirroring the evaluations CSV and a "Resumo" sheet with the per-agent
// aggregation.
func WriteWorkbook(path string, rows []Row, categories []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const evalSheet = "Avaliacoes"
	f.SetSheetName("Sheet1", evalSheet)

	header := append([]string{"data", "call_id", "agente", "fila"}, categories...)
	header = append(header, "pontuacao_percentual", "status")
	if err := setRow(f, evalSheet, 1, toAny(header)); err != nil {
		return err
	}
	for i, r := range rows {
		rec := []interface{}{r.When.Format(dateLayout), r.CallID, r.AgentID, r.Queue}
		for _, cat := range categories {
			rec = append(rec, CategoryStatus(r.Evaluation, cat))
		}
		status := "REPROVADA"
		if r.Evaluation.Approved() {
			status = "APROVADA"
		}
		rec = append(rec, r.Evaluation.PercentScore, status)
		if err := setRow(f, evalSheet, i+2, rec); err != nil {
			return err
		}
	}

	const sumSheet = "Resumo"
	if _, err := f.NewSheet(sumSheet); err != nil {
		return err
	}
	sumHeader := append([]string{"agente", "chamadas", "aprovadas", "media_percentual"}, categories...)
	if err := setRow(f, sumSheet, 1, toAny(sumHeader)); err != nil {
		return err
	}
	summary := Aggregate(rows, categories)
	for i, st := range summary.Agents() {
		rec := []interface{}{st.AgentID, st.Calls, st.Approved, st.AvgPercent()}
		for _, cat := range categories {
			rec = append(rec, st.NonConformant[cat])
		}
		if err := setRow(f, sumSheet, i+2, rec); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
