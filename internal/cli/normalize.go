package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/io"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// normalizeCommand prints the canonical form of a roster file.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "normalize [roster]",
		Short: "Print a roster in canonical form",
		Long: `Print a roster in canonical form.

Every record gets an id, a name, an optional year and folded, deduplicated
tag lists. The output can be fed back to any command unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNormalize(cmd.Context(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(io.FormatJSON), "stdout format: json, yaml (files use their extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runNormalize(ctx context.Context, input, format, output string) error {
	f, err := io.ParseFormat(format)
	if err != nil {
		return err
	}
	entities, err := pipeline.NewRunner(nil, nil, c.Logger).Load(ctx, input)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		return io.WriteRoster(os.Stdout, entities, f)
	}
	if err := io.ExportRoster(entities, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Normalized %d students", len(entities))
	printFile(output)
	return nil
}
