package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/pipeline"
	"github.com/WanderTerra/Automacao-monitoria/internal/portal"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download pending recordings into the work folder",
	Long: `Download every pending recording from the telephony portal, rename it
to the "YYYYMMDD_HHMMSS_Agente_<id>_Fila_<queue>.wav" convention and
record the file-to-call-id mapping.`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	f := downloadCmd.Flags()
	f.StringVar(&windowFlags.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&windowFlags.to, "to", "", "End date (YYYY-MM-DD, exclusive)")
}

func runDownload(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	dl, err := portal.New(cfg.Portal)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, st, dl, nil, nil, nil)
	if err != nil {
		return err
	}
	n, err := p.Download(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%d recordings downloaded to %s\n", n, cfg.WorkDir)
	return nil
}
