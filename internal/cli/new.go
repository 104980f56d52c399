package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/imageforge/imageforge/pkg/script"
)

const defaultProgramFile = "imageforge.expr"

// newCommand creates the command that writes the starter program.
func (c *CLI) newCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Write the starter program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultProgramFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == stdinArg {
				fmt.Print(script.DefaultProgram)
				return nil
			}
			if err := writeProgram(path, force); err != nil {
				return err
			}
			printSuccess("Created %s", path)
			printNextStep("Render it", "imageforge render "+path)
			printNextStep("Or keep it rendering while you edit", "imageforge watch "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// writeProgram writes the default program to path. It refuses to replace an
// existing file unless force is set.
func writeProgram(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(script.DefaultProgram); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
