package cli

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/pipeline"
	"github.com/imageforge/imageforge/pkg/source"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	renderOpts
	interval time.Duration
	plain    bool // log lines instead of the status view
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch <file|url>",
		Short: "Re-render a program whenever it changes",
		Long: `Watch polls a program file or http(s) URL and re-renders it whenever its
text changes. Load errors while polling are ignored, so a file caught
mid-save is simply read again on the next tick.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Scale
			}
			if !cmd.Flags().Changed("interval") {
				opts.interval = c.Config.PollInterval
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: imageforge-output in output_dir)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().DurationVar(&opts.interval, "interval", source.DefaultPollInterval, "poll interval")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print log lines instead of the status view")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runWatch(parent context.Context, location string, opts watchOpts) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	logger := loggerFromContext(ctx)
	if !opts.plain {
		// The status view owns the terminal.
		logger = log.New(io.Discard)
		ctx = withLogger(ctx, logger)
	}

	loader := &source.Loader{Logger: logger}
	program, err := loader.Load(ctx, location)
	if err != nil {
		return err
	}

	cacheKind := c.Config.Cache
	if opts.noCache {
		cacheKind = cacheNone
	}
	runner, err := c.newRunner(ctx, cacheKind)
	if err != nil {
		return err
	}
	defer runner.Close()

	render := func(src string) renderDoneMsg {
		res, files, err := c.renderToFiles(ctx, runner, src, opts.renderOpts)
		msg := renderDoneMsg{files: files, err: err, at: time.Now()}
		if res != nil {
			msg.size = res.Size
			msg.cached = res.CacheInfo.Hit
		}
		return msg
	}

	changes := loader.Watch(ctx, location, program, opts.interval)

	if opts.plain {
		return watchPlain(ctx, logger, location, program, changes, render)
	}

	p := tea.NewProgram(newWatchModel(describe(location)))
	go func() {
		p.Send(renderStartMsg{})
		p.Send(render(program))
		for src := range changes {
			p.Send(renderStartMsg{})
			p.Send(render(src))
		}
		// changes closes when ctx is done.
		p.Quit()
	}()

	_, err = p.Run()
	cancel()
	if err != nil {
		return err
	}
	// Quitting from the view is a clean exit; an interrupt is not.
	return parent.Err()
}

// watchPlain renders each change and reports it through the logger.
func watchPlain(ctx context.Context, logger *log.Logger, location, program string, changes <-chan string, render func(string) renderDoneMsg) error {
	report := func(src string) {
		prog := newProgress(logger)
		msg := render(src)
		if msg.err != nil {
			logger.Error("render failed", "code", errors.GetCode(msg.err), "err", errors.UserMessage(msg.err))
			return
		}
		logger.Debug("render stats", "size", msg.size.String(), "cached", msg.cached)
		for _, f := range msg.files {
			prog.done("Wrote " + f)
		}
	}

	logger.Info("Watching", "source", describe(location))
	report(program)
	for src := range changes {
		logger.Info("Changed", "source", describe(location))
		report(src)
	}
	return ctx.Err()
}
