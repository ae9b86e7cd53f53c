package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/pipeline"
	"github.com/WanderTerra/Automacao-monitoria/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe and label the downloaded recordings",
	Long: `Transcribe every .wav waiting in the work folder, normalize the firm
name, label the speakers and run the completeness check. Transcripts land
in the portfolio transcript folder; failed audio moves to the error folder.`,
	Args: cobra.NoArgs,
	RunE: runTranscribe,
}

func runTranscribe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lb, err := buildLabeler(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, nil, nil, transcribe.New(cfg.OpenAI), lb, nil)
	if err != nil {
		return err
	}
	n, err := p.Transcribe(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%d recordings transcribed\n", n)
	return nil
}
