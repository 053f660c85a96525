package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocksnap/pkg/config"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/render/nodelink"
	"github.com/matzehuels/blocksnap/pkg/render/snapshot"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file; stdout when empty
	format   string  // dot, svg or png; inferred from output when empty
	steps    int     // number of steps to replay; negative replays all
	detailed bool    // include type, position and state in DOT labels
	markers  bool    // include insertion markers in DOT output
	scale    float64 // PNG pixels per workspace unit
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{steps: -1, markers: true, scale: 1}

	cmd := &cobra.Command{
		Use:   "graph [scenario]",
		Short: "Export the workspace of a scenario as DOT, SVG or PNG",
		Long: `Replay some or all steps of a scenario and export the resulting workspace.
DOT and SVG show the block tree with previews; PNG draws the blocks as the
user would see them, including the dragged stack.

Use --steps to stop in the middle of a drag and capture its preview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := graphFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from --output, else dot)")
	cmd.Flags().IntVar(&opts.steps, "steps", opts.steps, "replay only the first N steps")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show type, position and state in node labels")
	cmd.Flags().BoolVar(&opts.markers, "markers", opts.markers, "include insertion markers")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixels per workspace unit")

	return cmd
}

// graphFormat resolves the export format from the flag or the output
// extension.
func graphFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = formatDOT
		}
	}
	switch format {
	case formatDOT, formatSVG, formatPNG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg' or 'png')", format)
}

func (c *CLI) runGraph(ctx context.Context, out, status io.Writer, path string, opts graphOpts) error {
	f, cfg, err := c.loadScenario(path)
	if err != nil {
		return err
	}
	w, err := c.replay(ctx, f, cfg, opts.steps)
	if err != nil {
		return err
	}

	data, err := c.exportWorld(ctx, status, w, opts)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(out, opts.output)
	return nil
}

func (c *CLI) exportWorld(ctx context.Context, status io.Writer, w *scenario.World, opts graphOpts) ([]byte, error) {
	switch opts.format {
	case formatPNG:
		so := w.SnapshotOptions()
		so.Scale = opts.scale
		return snapshot.RenderPNG(w.Workspace, so)
	case formatSVG:
		dot := nodelink.ToDOT(w.Workspace, nodelink.Options{Detailed: opts.detailed, Markers: opts.markers})
		rc := c.newCache(ctx, w.Config)
		defer rc.Close()
		spin := newSpinner(ctx, status, "Rendering SVG")
		spin.Start()
		svg, hit, err := nodelink.RenderSVGCached(ctx, rc, dot)
		spin.Stop()
		c.Logger.Debug("svg", "cached", hit)
		return svg, err
	default:
		return []byte(nodelink.ToDOT(w.Workspace, nodelink.Options{Detailed: opts.detailed, Markers: opts.markers})), nil
	}
}

// replay builds f and applies its first n steps, or all of them when n is
// negative. Expectations are checked but not enforced.
func (c *CLI) replay(ctx context.Context, f *scenario.File, cfg config.Config, n int) (*scenario.World, error) {
	w, err := scenario.Build(f, c.options(&cfg))
	if err != nil {
		return nil, err
	}
	steps := f.Steps
	if n >= 0 && n < len(steps) {
		steps = steps[:n]
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := w.Apply(step)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("step", "state", st.String())
	}
	return w, nil
}
