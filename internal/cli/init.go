package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsfix/internal/logging"
)

// configTemplate is the starter tool configuration written by tsfix init.
const configTemplate = `# tsfix configuration
# See 'tsfix fix --help' for the matching command-line flags.

# Path to the project configuration file.
project: tsconfig.json

# External command that computes combined code fixes. It receives a JSON
# request on stdin and must print a JSON fix document on stdout.
# provider: node ./scripts/fix-provider.js

# Directory that receives changed files. Empty means fix in place.
# output_dir: ""

# Persist changes by default. Leave false to keep dry-run as the default.
write: false

# Log level: debug, info, warn, error.
log_level: info
`

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .tsfix.yaml",
		Long:  `Write a commented starter .tsfix.yaml into the current directory.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(force bool) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	path := filepath.Join(workDir, ".tsfix.yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("wrote config file", logging.FieldPath, path)
	return nil
}
