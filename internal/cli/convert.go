package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/pipeline"
	"github.com/tabviz/tabviz/pkg/specfile"
	"github.com/tabviz/tabviz/pkg/table"
)

// convertCommand creates the convert command, the main entry point for
// turning a table into a graph description.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		descriptor string
		nodeRules  []string
		edgeRules  []string
		specPath   string
		labels     bool
		name       string
		rankdir    string
		formatsStr string
		output     string
		noCache    bool
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "convert [table.csv|table.json]",
		Short: "Convert a table into a graph description",
		Long: `Convert a table into a graph description.

The convert command reads a CSV or JSON table and materializes nodes and
edges from it, driven by a relationship descriptor such as "city -> country"
or "a+b -- c". Attribute rules ("tag: key=value, ...") decorate the
resulting nodes and edges.

Conversion settings can also come from a spec file (--spec, YAML or TOML);
flags given on the command line override the file.

Rendered SVG and PNG artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			if specPath != "" {
				spec, err := specfile.Load(specPath)
				if err != nil {
					return err
				}
				opts = pipeline.FromSpec(spec)
			}

			// Flags override the spec file.
			if descriptor != "" {
				opts.Descriptor = descriptor
			}
			if len(nodeRules) > 0 {
				opts.NodeRules = nodeRules
			}
			if len(edgeRules) > 0 {
				opts.EdgeRules = edgeRules
			}
			if labels {
				opts.Labels = true
			}
			if name != "" {
				opts.Name = name
			}
			if rankdir != "" {
				opts.Rankdir = rankdir
			}
			opts.Formats = parseFormats(formatsStr)

			return c.runConvert(cmd.Context(), args[0], opts, output, noCache, preview)
		},
	}

	cmd.Flags().StringVarP(&descriptor, "descriptor", "d", "", `relationship descriptor, e.g. "city -> country"`)
	cmd.Flags().StringArrayVar(&nodeRules, "node-rule", nil, `node attribute rule, e.g. "city: shape=box" (repeatable)`)
	cmd.Flags().StringArrayVar(&edgeRules, "edge-rule", nil, `edge attribute rule, e.g. "A: color=gray" (repeatable)`)
	cmd.Flags().StringVar(&specPath, "spec", "", "conversion spec file (YAML or TOML)")
	cmd.Flags().BoolVar(&labels, "labels", false, "add a label column to the node table")
	cmd.Flags().StringVar(&name, "name", "", `graph name in DOT output (default "G")`)
	cmd.Flags().StringVar(&rankdir, "rankdir", "", "layout direction in DOT output: TB, LR, BT, RL")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&preview, "preview", false, "browse the node and edge tables interactively")

	return cmd
}

// runConvert loads the input table, executes the pipeline, and writes the
// requested artifacts.
func (c *CLI) runConvert(ctx context.Context, input string, opts pipeline.Options, output string, noCache, preview bool) error {
	src, err := readTable(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(noCache)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Converting table...")
	spinner.Start()

	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Converted %d rows", res.Stats.RowCount))
	printSuccess("Graph description ready")
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, anyCacheHit(res.CacheHits))

	if preview {
		model := newPreviewModel(res.Graph)
		if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
			printWarning("Preview failed: %v", err)
		}
	}

	if err := writeArtifacts(input, output, opts.Formats, res.Artifacts); err != nil {
		return err
	}

	if len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatDOT {
		printNextStep("Render an image", fmt.Sprintf("tabviz convert %s -f svg", input))
	}
	return nil
}

// readTable loads the input file, dispatching on its extension.
func readTable(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return table.ReadCSVFile(path)
	case ".json":
		return table.ReadJSONFile(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unsupported input %q (expected .csv or .json)", path)
	}
}

// writeArtifacts writes each rendered artifact to disk.
//
// With no --output the paths derive from the input file name. A single
// format treats --output as the literal target; multiple formats treat it
// as a base path and append the format extension.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) error {
	for _, format := range formats {
		path := artifactPath(input, output, format, len(formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath derives the target file for one format.
func artifactPath(input, output, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if multi {
		return output + "." + format
	}
	return output
}

// anyCacheHit reports whether any artifact came from the cache.
func anyCacheHit(hits map[string]bool) bool {
	for _, hit := range hits {
		if hit {
			return true
		}
	}
	return false
}
