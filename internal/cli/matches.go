package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/links"
	"github.com/matzehuels/constellation/pkg/pipeline"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// matchesCommand creates the matches command, a roster-wide partner report.
func (c *CLI) matchesCommand() *cobra.Command {
	var (
		flags    viewFlags
		partners int
	)

	cmd := &cobra.Command{
		Use:   "matches [roster]",
		Short: "List the best partners for every student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runMatches(cmd.Context(), args[0], opts, partners)
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "scoring mode: ideal (default), band, instruments, influences")
	cmd.Flags().IntVarP(&partners, "partners", "p", links.Desktop.Min, "partners listed per student")

	return cmd
}

func (c *CLI) runMatches(ctx context.Context, input string, opts pipeline.Options, partners int) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	entities, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	mode := opts.ResolveMode()

	matches := opts.Selector().Matches(entities, mode, partners)
	fmt.Println(StyleTitle.Render("Best matches") + " " + StyleDim.Render(fmt.Sprintf("(%s · %d students)", mode, len(entities))))
	fmt.Println(renderMatches(matches, opts.Table, mode))
	return nil
}

// renderMatches formats one row per student, best partner first.
func renderMatches(matches []links.Match, t similarity.Table, mode similarity.Mode) string {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		row := []string{m.Student.DisplayLabel(), formatYear(m.Student.Year), "—", "", "", ""}
		if best := m.Best(); best != nil {
			row[2] = best.Entity.DisplayLabel()
			row[3] = formatScore(best.Score)
			row[4] = describeShared(t, &m.Student, &best.Entity, mode)
			others := make([]string, 0, len(m.Partners)-1)
			for _, p := range m.Partners[1:] {
				others = append(others, p.Entity.DisplayLabel())
			}
			row[5] = strings.Join(others, ", ")
		}
		rows[i] = row
	}
	return renderTable([]string{"Student", "Year", "Best match", "Score", "Shared", "Also"}, rows, -1)
}
