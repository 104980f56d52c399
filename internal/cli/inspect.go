package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/inspect"
	"github.com/imageforge/imageforge/pkg/script"
)

const (
	inspectSummary = "summary"
	inspectDOT     = "dot"
	inspectSVG     = "svg"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format  string
	attrs   bool
	maxText int
	output  string
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: inspectSummary}

	cmd := &cobra.Command{
		Use:   "inspect <file|url|->",
		Short: "Show the node tree a program builds",
		Long: `Inspect evaluates a program and prints the node tree it rendered: a summary
of its elements, the tree as Graphviz DOT, or the tree laid out as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case inspectSummary, inspectDOT, inspectSVG:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: summary, dot, svg)", opts.format)
			}
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output: summary (default), dot, svg")
	cmd.Flags().BoolVar(&opts.attrs, "attrs", false, "list attributes under each element (dot, svg)")
	cmd.Flags().IntVar(&opts.maxText, "max-text", inspect.DefaultMaxText, "truncate text and attribute values")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, location string, opts inspectOpts) error {
	program, err := c.readProgram(ctx, location)
	if err != nil {
		return err
	}

	eval := &script.Evaluator{MaxProgramBytes: c.Config.MaxProgramBytes}
	res, err := eval.Run(ctx, program)
	if err != nil {
		return err
	}
	if res.Root == nil {
		return errors.New(errors.ErrCodeInvalidOutput, "program returned markup it did not build with render; there is no node tree to inspect")
	}

	if opts.format == inspectSummary {
		printSummary(describe(location), inspect.ParseSize(res.SVG), inspect.Summarize(res.Root))
		return nil
	}

	dot := inspect.ToDOT(res.Root, inspect.Options{Attrs: opts.attrs, MaxText: opts.maxText})
	data := []byte(dot)
	if opts.format == inspectSVG {
		if data, err = inspect.RenderSVG(ctx, dot); err != nil {
			return err
		}
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Wrote %s tree", opts.format)
		printFile(opts.output)
	}
	return nil
}

func printSummary(name string, size inspect.Size, s inspect.Summary) {
	fmt.Println(StyleTitle.Render(name))
	if dims := size.String(); dims != "" {
		printKeyValue("size", dims)
	}
	printKeyValue("elements", StyleNumber.Render(strconv.Itoa(s.Elements)))
	printKeyValue("texts", StyleNumber.Render(strconv.Itoa(s.Texts)))
	printKeyValue("depth", StyleNumber.Render(strconv.Itoa(s.Depth)))

	tags := make([]string, 0, len(s.Tags))
	for tag := range s.Tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if s.Tags[tags[i]] != s.Tags[tags[j]] {
			return s.Tags[tags[i]] > s.Tags[tags[j]]
		}
		return tags[i] < tags[j]
	})
	printNewline()
	for _, tag := range tags {
		printDetail("%-16s %d", tag, s.Tags[tag])
	}
}
