package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/evaluate"
	"github.com/WanderTerra/Automacao-monitoria/internal/report"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild reports from evaluations already in the database",
	Long: `Rebuild the evaluations CSV and consolidated workbook from persisted
evaluations, without reprocessing any audio. Useful after the fact or to
report over a wider window than a single run.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&windowFlags.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&windowFlags.to, "to", "", "End date (YYYY-MM-DD, exclusive)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	recs, err := st.ListEvaluations(cmd.Context(), cfg.Filter.From, cfg.Filter.To)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no evaluations in the window")
		return nil
	}

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Avaliacao.CallID
	}
	queues, err := st.CallQueues(cmd.Context(), ids)
	if err != nil {
		return err
	}

	rows := make([]report.Row, len(recs))
	for i, r := range recs {
		rows[i] = report.Row{
			CallID:     r.Avaliacao.CallID,
			When:       r.Avaliacao.DataLigacao,
			AgentID:    r.Avaliacao.AgentID,
			Queue:      queues[r.Avaliacao.CallID],
			Evaluation: r.Evaluation(),
		}
	}

	stamp := time.Now().Format("20060102")
	evalPath := filepath.Join(cfg.WorkDir, "avaliacoes_"+stamp+".csv")
	bookPath := filepath.Join(cfg.WorkDir, "consolidado_"+stamp+".xlsx")
	if err := report.WriteEvaluationsCSV(evalPath, rows, evaluate.ReportCategories); err != nil {
		return err
	}
	if err := report.WriteWorkbook(bookPath, rows, evaluate.ReportCategories); err != nil {
		return err
	}

	summary := report.Aggregate(rows, evaluate.ReportCategories)
	fmt.Printf("%d evaluations, %d approved (threshold %.0f%%)\n",
		summary.TotalCalls, summary.Approved, types.ApprovalThreshold)
	fmt.Printf("wrote %s and %s\n", evalPath, bookPath)
	return nil
}
