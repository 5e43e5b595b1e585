package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redlight/internal/platform/tui"
	"github.com/vovakirdan/redlight/internal/storage"
)

var (
	flagTracesLimit  int
	flagTracesBrowse bool
	flagTracesDelete int64
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List recorded traces",
	Long: `Display the most recently recorded sessions.

With --browse, opens an interactive table where Enter replays the selected
trace and D deletes it.

Examples:
  redlight traces
  redlight traces --limit 50
  redlight traces --browse
  redlight traces --delete 12`,
	Args: cobra.NoArgs,
	Run:  runTraces,
}

func init() {
	tracesCmd.Flags().IntVar(&flagTracesLimit, "limit", 20, "Number of traces to show")
	tracesCmd.Flags().BoolVar(&flagTracesBrowse, "browse", false, "Open the interactive trace browser")
	tracesCmd.Flags().Int64Var(&flagTracesDelete, "delete", 0, "Delete the trace with this ID")
}

func runTraces(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening trace database: %v", err)
	}
	defer store.Close()

	if flagTracesDelete != 0 {
		if err := store.DeleteTrace(flagTracesDelete); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Deleted trace %d\n", flagTracesDelete)
		return
	}

	if flagTracesBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunTraces(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	traces, err := store.RecentTraces(flagTracesLimit)
	if err != nil {
		fail("retrieving traces: %v", err)
	}

	if len(traces) == 0 {
		fmt.Println("No traces recorded yet.")
		fmt.Println()
		fmt.Println("Run 'redlight play' or 'redlight sim --record' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-9s  %-20s  %-7s  %-6s  %-5s  %-5s  %-12s  %s\n",
		"ID", "Source", "Seed", "Ticks", "Deaths", "Level", "Cycle", "Outcome", "Date")
	fmt.Printf("  %-5s  %-9s  %-20s  %-7s  %-6s  %-5s  %-5s  %-12s  %s\n",
		"--", "------", "----", "-----", "------", "-----", "-----", "-------", "----")

	for _, tr := range traces {
		fmt.Printf("  %-5d  %-9s  %-20d  %-7d  %-6d  %-5d  %-5d  %-12s  %s\n",
			tr.ID, tr.Source, tr.Seed, tr.Ticks, tr.Deaths, tr.Level, tr.Cycle, tr.Outcome,
			tr.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'redlight replay <id>' to re-run a trace.")
}
