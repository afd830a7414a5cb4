// headers.go implements "swipe headers", the one-time sheet setup.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-dev/swipe/internal/config"
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Write the header row to the configured sheet",
	Long: `Write the column names into the first row of the Google Sheet. With any
other endpoint mode the header row is only logged.`,
	RunE: runHeaders,
}

func runHeaders(cmd *cobra.Command, args []string) error {
	p, err := loadProject(false)
	if err != nil {
		return err
	}
	defer p.close()

	res := p.client.CreateHeaders(cmd.Context())
	if !res.Success {
		return errors.New(res.Error)
	}

	out := cmd.OutOrStdout()
	if p.endpoint.Mode == config.Sheets {
		fmt.Fprintln(out, "Header row written.")
	} else {
		fmt.Fprintf(out, "Nothing sent. %s\n", p.endpointLine())
	}
	return nil
}
