// report.go implements the "swipe report" command for summarising results.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/report"
	"github.com/berth-dev/swipe/internal/session"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise collected submissions and local sessions",
	Long: `Display per-item tallies from the collector database (if one exists)
together with session statistics from the local event log.`,
	RunE: runReport,
}

var reportOut string

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Also write the report to this file")
}

func runReport(cmd *cobra.Command, args []string) error {
	p, err := loadProject(false)
	if err != nil {
		return err
	}
	defer p.close()

	var src report.Source
	path := databasePath(p.root)
	if _, statErr := os.Stat(path); statErr == nil {
		store, err := session.NewStore(path)
		if err != nil {
			return err
		}
		defer store.Close()
		src = store
	}

	var events []swipelog.LogEvent
	if p.eventLog != nil {
		if events, err = p.eventLog.ReadAll(); err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}
	}

	r, err := report.GenerateReport(p.model().Title(), src, events)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.FormatReport(r))
	if reportOut != "" {
		if err := report.WriteReport(resolvePath(p.root, reportOut), r); err != nil {
			return err
		}
	}
	return nil
}
