package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// layoutCommand creates the layout command for computing roster layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   viewFlags
		active  string
		format  string
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [roster]",
		Short: "Compute a layout document from a roster file",
		Long: `Compute a layout document from a roster file.

The roster is a JSON or YAML list of students. The output records every
visible student's position and year group, and, with --active, the ranked
similarity links from that student.

Output goes to <roster>.layout.<format> unless -o is given; "-o -" writes
to stdout. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Active = active
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, format, output, noCache)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&active, "active", "a", "", "student id to draw links from")
	cmd.Flags().StringVarP(&format, "format", "f", graph.FormatJSON, "output format: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <roster>.layout.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached document exists")

	return cmd
}

// runLayout loads the roster, computes the document, and writes it out.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, format, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	entities, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load roster %s: %w", input, err)
	}

	data, cacheHit, err := runner.RenderDocument(ctx, entities, opts, format)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	doc, err := graph.ReadDocument(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultLayoutPath(input, format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Laid out %d students", len(doc.Nodes)))

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(entities), len(doc.Links), cacheHit)
	printNewline()
	printNextStep("Explore", appName+" explore "+input)

	return nil
}

// defaultLayoutPath derives the output path from the roster path.
func defaultLayoutPath(input, format string) string {
	ext := strings.ToLower(format)
	if ext == "yml" {
		ext = "yaml"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".layout." + ext
}
