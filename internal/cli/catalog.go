// catalog.go implements "swipe catalog", which shows what a session will ask.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the cards in the active catalog",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	p, err := loadProject(false)
	if err != nil {
		return err
	}
	defer p.close()

	out := cmd.OutOrStdout()
	m := p.model()
	fmt.Fprintf(out, "%s (%d cards)\n", m.Title(), p.catalog.Len())
	if sub := m.Subtitle(); sub != "" {
		fmt.Fprintln(out, sub)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range p.catalog.Items() {
		fmt.Fprintf(w, "  %d\t%s\t%s\n", item.ID, item.Name, item.Category)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, p.endpointLine())
	return nil
}
