package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ditaspace/internal/configloader"
	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned when init would overwrite a file without
// confirmation.
var ErrConfigExists = errors.New("configuration file already exists")

type initFlags struct {
	force  bool
	output string
}

// confirmFunc asks whether an existing file may be overwritten.
type confirmFunc func(path string) (bool, error)

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.ProjectConfigFile + " configuration file",
		Long: `Create a commented ` + config.ProjectConfigFile + ` in the current directory holding
the default settings. When the file already exists you are asked before it is
overwritten; without a terminal, pass --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var confirm confirmFunc
			if configloader.IsInteractive() {
				confirm = promptConfirm(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			return runInit(flags, confirm)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.ProjectConfigFile, "output file path")

	return cmd
}

func runInit(flags *initFlags, confirm confirmFunc) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if confirm == nil {
			return fmt.Errorf("%w: %s; use --force to overwrite", ErrConfigExists, flags.output)
		}
		ok, err := confirm(flags.output)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
	}

	if err := os.WriteFile(absPath, config.GenerateTemplate(), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}

// promptConfirm returns a confirmFunc reading a yes/no answer from in.
func promptConfirm(in io.Reader, out io.Writer) confirmFunc {
	return func(path string) (bool, error) {
		fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
