package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WanderTerra/Automacao-monitoria/internal/diarize"
)

var identifyOverwrite bool

var identifyCmd = &cobra.Command{
	Use:   "identify <path>",
	Short: "Relabel speakers in existing transcripts with the rule labeler",
	Long: `Reapply the rule-based speaker labeler to a transcript file or to
every .txt in a directory. Prints the result unless --write is given, in
which case files are rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().BoolVar(&identifyOverwrite, "write", false, "Rewrite files in place instead of printing")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	lb := &diarize.RuleLabeler{}

	if !info.IsDir() {
		return identifyFile(cmd, lb, args[0])
	}
	entries, err := os.ReadDir(args[0])
	if err != nil {
		return err
	}
	done := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		if err := identifyFile(cmd, lb, filepath.Join(args[0], e.Name())); err != nil {
			return err
		}
		done++
	}
	fmt.Printf("%d transcripts relabeled\n", done)
	return nil
}

func identifyFile(cmd *cobra.Command, lb diarize.Labeler, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	labeled, err := lb.Label(cmd.Context(), string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
	}
	if !identifyOverwrite {
		fmt.Println(labeled)
		return nil
	}
	return os.WriteFile(path, []byte(labeled), 0o644)
}
