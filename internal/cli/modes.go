package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/config"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// modesCommand lists the scoring modes with their effective weights.
func (c *CLI) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "Show scoring modes and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.Config.Table()
			if err != nil {
				return err
			}
			fmt.Println(renderModes(t))
			printDetail("default mode: %s; override rows under [weights.<mode>] in %s", similarity.DefaultMode, config.Path())
			return nil
		},
	}
}

// renderModes formats the weight table, one row per mode.
func renderModes(t similarity.Table) string {
	headers := []string{"Mode"}
	for _, a := range roster.Attributes {
		headers = append(headers, a.String())
	}
	headers = append(headers, "collab")

	rows := make([][]string, len(similarity.Modes))
	for i, m := range similarity.Modes {
		w := t.Weights(m)
		row := []string{string(m)}
		for _, a := range roster.Attributes {
			row = append(row, formatScore(w.For(a)))
		}
		rows[i] = append(row, formatScore(w.Collab))
	}

	highlight := -1
	for i, m := range similarity.Modes {
		if m == similarity.DefaultMode {
			highlight = i
		}
	}
	return renderTable(headers, rows, highlight)
}
