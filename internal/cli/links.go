package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/links"
	"github.com/matzehuels/constellation/pkg/pipeline"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// linksCommand creates the links command, which ranks one student's peers.
func (c *CLI) linksCommand() *cobra.Command {
	var (
		flags   viewFlags
		student string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "links [roster] --student ID",
		Short: "Rank the classmates closest to one student",
		Long: `Rank the classmates closest to one student.

Only students visible under --group are ranked. The shared column lists
the tags each link is built on, attribute by attribute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(student) == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--student must name a student id")
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Active = strings.TrimSpace(student)
			if compact {
				opts.Limits = links.Compact
			}
			return c.runLinks(cmd.Context(), args[0], opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&student, "student", "s", "", "student id (required)")
	cmd.Flags().BoolVar(&compact, "compact", false, "cap links at the compact limit")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func (c *CLI) runLinks(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, input, opts)
	if err != nil {
		return err
	}
	if res.Active == nil {
		return errors.New(errors.ErrCodeNotFound, "student %q not found", opts.Active)
	}

	fmt.Println(StyleTitle.Render(res.Active.DisplayLabel()) + " " +
		StyleDim.Render(fmt.Sprintf("(%s · %s · group %s)", res.Active.ID, res.Mode, res.Filter)))
	if len(res.Links) == 0 {
		printWarning("No classmate shares anything with %s", res.Active.DisplayLabel())
		return nil
	}
	fmt.Println(renderLinks(res.Options.Table, res))
	return nil
}

// renderLinks formats ranked links as a table.
func renderLinks(t similarity.Table, res *pipeline.Result) string {
	rows := make([][]string, len(res.Links))
	for i, l := range res.Links {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			l.To.DisplayLabel(),
			formatYear(l.To.Year),
			formatScore(l.Score),
			ratioBar(l.Ratio, 10),
			describeShared(t, res.Active, &l.To.Entity, res.Mode),
		}
	}
	return renderTable([]string{"#", "Student", "Year", "Score", "Match", "Shared"}, rows, 0)
}

// describeShared summarizes the tags a and b have in common under mode.
func describeShared(t similarity.Table, a, b *roster.Entity, mode similarity.Mode) string {
	parts, bonus := t.Breakdown(a, b, mode)
	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		out = append(out, p.Attribute.String()+": "+strings.Join(p.Shared, ", "))
	}
	if bonus > 0 {
		out = append(out, "collab +"+formatScore(bonus))
	}
	return strings.Join(out, " · ")
}
