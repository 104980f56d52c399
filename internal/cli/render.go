package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/imageforge/imageforge/pkg/pipeline"
	"github.com/imageforge/imageforge/pkg/source"
)

// stdinArg names standard input as the program location.
const stdinArg = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path
	formats []string // output formats: "svg", "png"
	scale   float64  // PNG scale factor
	stdout  bool     // write the SVG to stdout instead of a file
	noCache bool     // disable the render cache
	refresh bool     // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file|url|->",
		Short: "Evaluate a program and write the SVG (and PNG) it produces",
		Example: `  imageforge render card.expr
  imageforge render card.expr -f svg,png --scale 2 -o out/card
  imageforge render https://example.com/card.expr --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Scale
			}
			if opts.stdout && (len(opts.formats) != 1 || opts.formats[0] != pipeline.FormatSVG) {
				return fmt.Errorf("--stdout only supports the svg format")
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: imageforge-output in output_dir)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the SVG to stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the result is cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, location string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	program, err := c.readProgram(ctx, location)
	if err != nil {
		return err
	}
	logger.Debug("loaded program", "source", describe(location), "bytes", len(program))

	cacheKind := c.Config.Cache
	if opts.noCache {
		cacheKind = cacheNone
	}
	runner, err := c.newRunner(ctx, cacheKind)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.stdout {
		res, err := runner.Execute(ctx, opts.pipelineOptions(program, logger))
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, res.SVG())
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+describe(location))
	spinner.Start()
	res, files, err := c.renderToFiles(ctx, runner, program, opts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess("Rendered " + describe(location))

	for _, path := range files {
		printFile(path)
	}
	printRenderStats(res.Size, res.Stats.Bytes, res.CacheInfo.Hit)
	return nil
}

func (o renderOpts) pipelineOptions(program string, logger *log.Logger) pipeline.Options {
	return pipeline.Options{
		Program: program,
		Formats: o.formats,
		Scale:   o.scale,
		Refresh: o.refresh,
		Logger:  logger,
	}
}

// renderToFiles runs the program and writes one file per format. It returns
// the written paths in format order.
func (c *CLI) renderToFiles(ctx context.Context, runner *pipeline.Runner, program string, opts renderOpts) (*pipeline.Result, []string, error) {
	res, err := runner.Execute(ctx, opts.pipelineOptions(program, loggerFromContext(ctx)))
	if err != nil {
		return nil, nil, err
	}

	paths := outputPaths(opts.output, c.Config.OutputDir, opts.formats)
	files := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], res.Artifacts[format]); err != nil {
			return nil, nil, err
		}
		files = append(files, paths[format])
	}
	return res, files, nil
}

// readProgram loads the program from stdin, a file or a URL.
func (c *CLI) readProgram(ctx context.Context, location string) (string, error) {
	if location == stdinArg {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, int64(c.Config.MaxProgramBytes)+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	loader := &source.Loader{Logger: loggerFromContext(ctx)}
	return loader.Load(ctx, location)
}

func describe(location string) string {
	if location == stdinArg {
		return "stdin"
	}
	return source.Describe(location)
}

// outputPaths maps each format to its file. A single format written to an
// output with an extension uses that output as is; otherwise the output is
// a base path that gets the format's extension.
func outputPaths(output, dir string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := basePath(output)
	if output == "" && dir != "" {
		base = filepath.Join(dir, base)
	}
	for _, format := range formats {
		paths[format] = pipeline.FileName(base, format)
	}
	return paths
}

// basePath strips a known format extension from output, or returns the
// default output name when output is empty.
func basePath(output string) string {
	if output == "" {
		return pipeline.DefaultOutputName
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
