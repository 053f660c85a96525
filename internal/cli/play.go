package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocksnap/pkg/scenario"
)

func (c *CLI) playCommand() *cobra.Command {
	nudge := float64(defaultNudge)

	cmd := &cobra.Command{
		Use:   "play [scenario]",
		Short: "Drag blocks of a scenario interactively",
		Long: `Open the workspace of a scenario in the terminal. Select a block, press it,
move the pointer with the arrow keys and watch the preview change. The
scripted steps of the scenario can be stepped through with ".".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, cfg, err := c.loadScenario(args[0])
			if err != nil {
				return err
			}
			w, err := scenario.Build(f, c.options(&cfg))
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewPlayModel(w, nudge), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("play: %w", err)
			}
			if m, ok := final.(PlayModel); ok && len(m.history) > 0 {
				printInfo(cmd.OutOrStdout(), "%s", m.history[len(m.history)-1])
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&nudge, "nudge", nudge, "workspace units per arrow key")

	return cmd
}
