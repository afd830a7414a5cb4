// play.go implements "swipe play", the non-interactive session.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/berth-dev/swipe/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session without the terminal UI",
	Long: `Resolve cards in catalog order from a list of verdicts and submit the
results once every card is decided. Verdicts are keep/right/k, kill/left/x,
or maybe/up/skip, separated by commas or spaces.

  swipe play --verdicts "keep kill maybe"`,
	RunE: runPlay,
}

var verdictsFlag string

func init() {
	playCmd.Flags().StringVar(&verdictsFlag, "verdicts", "", "Verdicts to apply in order")
}

func runPlay(cmd *cobra.Command, args []string) error {
	verdicts, err := tui.ParseVerdicts(verdictsFlag)
	if err != nil {
		return err
	}

	p, err := loadProject(false)
	if err != nil {
		return err
	}
	defer p.close()

	_, err = tui.NewFallbackRunner(p.model(), cmd.OutOrStdout()).Play(cmd.Context(), verdicts)
	return err
}
