package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/evaluate"
	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
	"github.com/WanderTerra/Automacao-monitoria/internal/pipeline"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score pending transcripts and persist the evaluations",
	Long: `Score every labeled transcript against the portfolio checklist,
persist the result to the database and write the run reports. Transcripts
that cannot be matched to a call or scored move to the error folder.`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if err := st.Migrate(); err != nil {
		return err
	}

	ev := evaluate.NewEvaluator(llm.New(cfg.OpenAI))
	p, err := pipeline.New(cfg, st, nil, nil, nil, ev)
	if err != nil {
		return err
	}
	n, err := p.Evaluate(cmd.Context())
	if err != nil {
		return err
	}
	if err := p.Report(); err != nil {
		return err
	}
	fmt.Printf("%d transcripts evaluated\n", n)
	return nil
}
