package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/render/snapshot"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

// watchDebounce collapses the burst of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	json  bool   // print the report as JSON
	png   string // write a snapshot of the final workspace here
	watch bool   // rerun whenever the scenario file changes
}

// errExpectations reports unmet scenario expectations. The report itself
// has already been printed.
var errExpectations = errors.New(errors.ErrCodeInvalidScenario, "expectations not met")

func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate [scenario]",
		Short: "Replay a scenario and check its expectations",
		Long: `Replay the drag steps of a scenario file and print what the engine shows
after each step: the candidate connection, the preview mode and whether the
drop would delete. The command fails when an expectation is not met.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return c.watchScenario(cmd.Context(), args[0], func() {
					if err := c.runSimulate(cmd.Context(), cmd.OutOrStdout(), args[0], opts); err != nil && err != errExpectations {
						printError(cmd.OutOrStdout(), "%v", err)
					}
				})
			}
			return c.runSimulate(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.png, "png", "", "write a PNG snapshot of the final workspace")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rerun when the scenario file changes")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, out io.Writer, path string, opts simulateOpts) error {
	f, cfg, err := c.loadScenario(path)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	rep, err := scenario.Run(ctx, f, c.options(&cfg))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d steps", len(rep.States)))

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		printReport(out, rep)
	}

	if opts.png != "" {
		data, err := snapshot.RenderPNG(rep.World.Workspace, rep.World.SnapshotOptions())
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.png, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		if !opts.json {
			printFile(out, opts.png)
		}
	}

	if !rep.Passed() {
		return errExpectations
	}
	return nil
}

// watchScenario calls run once, then again after every change to path,
// until ctx is done. The directory is watched because editors often
// replace files instead of writing them in place.
func (c *CLI) watchScenario(ctx context.Context, path string, run func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	run()
	c.Logger.Info("Watching for changes", "file", path)

	debounce := time.NewTimer(0)
	<-debounce.C
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher", "err", err)
		case <-debounce.C:
			c.Logger.Debug("scenario changed", "file", path)
			run()
		}
	}
}
