package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List the completed calls pending monitoring",
	Long: `List the calls the current filter would pick for monitoring, without
downloading anything. The window comes from CALLS_FROM/CALLS_TO or the
--from/--to flags.`,
	Args: cobra.NoArgs,
	RunE: runCalls,
}

func init() {
	f := callsCmd.Flags()
	f.StringVar(&windowFlags.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&windowFlags.to, "to", "", "End date (YYYY-MM-DD, exclusive)")
}

func runCalls(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	calls, err := st.PendingCalls(cmd.Context(), cfg.Filter)
	if err != nil {
		return err
	}
	if len(calls) == 0 {
		fmt.Println("no pending calls")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CALL ID\tSTART\tAGENT\tQUEUE\tSECS")
	for _, c := range calls {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			c.CallID, c.StartTime.Format("2006-01-02 15:04:05"), c.AgentID, c.QueueID, c.CallSecs)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d calls pending\n", len(calls))
	return nil
}
