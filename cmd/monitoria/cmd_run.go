package main

import (
	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/evaluate"
	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
	"github.com/WanderTerra/Automacao-monitoria/internal/pipeline"
	"github.com/WanderTerra/Automacao-monitoria/internal/portal"
	"github.com/WanderTerra/Automacao-monitoria/internal/transcribe"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full monitoring batch",
	Long: `Run every stage in order: download pending recordings, transcribe and
label them, score the transcripts and write the run reports.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&windowFlags.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&windowFlags.to, "to", "", "End date (YYYY-MM-DD, exclusive)")
}

func runRun(cmd *cobra.Command, _ []string) error {
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
	dl, err := portal.New(cfg.Portal)
	if err != nil {
		return err
	}
	lb, err := buildLabeler(cfg)
	if err != nil {
		return err
	}

	client := llm.New(cfg.OpenAI)
	p, err := pipeline.New(cfg, st, dl, transcribe.New(cfg.OpenAI), lb, evaluate.NewEvaluator(client))
	if err != nil {
		return err
	}
	return p.Run(cmd.Context())
}
