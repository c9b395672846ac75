package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsfix/internal/configloader"
	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/internal/ui/pretty"
	"github.com/yaklabco/tsfix/pkg/batch"
	"github.com/yaklabco/tsfix/pkg/codefix/execprovider"
)

// ErrNoProviderCommand is returned when no fix provider command is
// configured via flag, config file, or environment.
var ErrNoProviderCommand = errors.New("no fix provider command configured (use --provider or .tsfix.yaml)")

type fixFlags struct {
	project  string
	outDir   string
	write    bool
	files    []string
	provider string
	noDiffs  bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply the combined fix across the project",
		Long:  fixLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFix(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "path to the project configuration file")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "",
		"directory that receives changed files (default: the project directory)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "persist changed files (default: dry run)")
	cmd.Flags().StringSliceVar(&flags.files, "file", nil,
		"restrict the run to these files, relative to the project directory (repeatable)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "external fix provider command")
	cmd.Flags().BoolVar(&flags.noDiffs, "no-diffs", false, "suppress per-file diffs in dry-run output")

	return cmd
}

const fixLongDescription = `Apply the combined code fix for missing type annotations on exported
symbols to every eligible file of the project.

Eligible files are the project's resolved source files, excluding anything
under node_modules and declaration-only files. Edits are applied in memory;
nothing touches disk unless --write is given.

Examples:
  tsfix fix -p tsconfig.json                   # Dry run, print diffs
  tsfix fix -p tsconfig.json --write           # Fix files in place
  tsfix fix -p tsconfig.json -o out --write    # Mirror fixed tree under out/
  tsfix fix --file src/index.ts --write        # Fix a single file`

func runFix(cmd *cobra.Command, flags *fixFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load tool configuration"), err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded tool configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logging.SetLevel(cfg.LogLevel)

	// CLI flags take precedence over file and environment.
	if cmd.Flags().Changed("project") {
		cfg.Project = flags.project
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutputDir = flags.outDir
	}
	if cmd.Flags().Changed("write") {
		cfg.Write = flags.write
	}
	if cmd.Flags().Changed("file") {
		cfg.Files = flags.files
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = flags.provider
	}

	if cfg.Provider == "" {
		return ErrNoProviderCommand
	}

	provider, err := execprovider.New(cfg.Provider, workDir)
	if err != nil {
		return err
	}

	opts := batch.Options{
		WorkingDir: workDir,
		ConfigPath: cfg.Project,
		OutputDir:  cfg.OutputDir,
		FileSubset: cfg.Files,
		Write:      cfg.Write,
	}

	logger.Debug("starting fix run",
		logging.FieldProject, opts.ConfigPath,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldOutputDir, opts.OutputDir,
		logging.FieldWrite, opts.Write,
		logging.FieldProvider, cfg.Provider,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := batch.NewRunner(provider, nil, logger)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.ColorEnabled(colorMode, cmd.OutOrStdout()))

	if !opts.Write && !flags.noDiffs {
		renderDiffs(cmd, styles, runner, workDir)
	}

	fmt.Fprint(cmd.OutOrStdout(), pretty.RenderSummary(styles, pretty.Summary{
		FilesResolved: result.Stats.FilesResolved,
		FilesChanged:  result.Stats.FilesChanged,
		FilesSkipped:  result.Stats.FilesSkipped,
		InvalidPaths:  len(result.InvalidPaths),
		EditsApplied:  result.Stats.EditsApplied,
		FilesWritten:  len(result.WrittenPaths),
		DryRun:        !opts.Write,
		Status:        result.Status,
	}))

	return nil
}

// renderDiffs prints the dry-run diff of every changed overlay entry.
func renderDiffs(cmd *cobra.Command, styles *pretty.Styles, runner *batch.Runner, workDir string) {
	ov := runner.Overlay
	if ov == nil {
		return
	}

	width := pretty.TerminalWidth(cmd.OutOrStdout())
	changed := ov.Changed()
	for _, path := range ov.Paths() {
		entry, ok := changed[path]
		if !ok {
			continue
		}
		display := path
		if rel, err := filepath.Rel(workDir, path); err == nil {
			display = rel
		}
		if diff := pretty.RenderDiff(styles, display, entry.Original, entry.Current, width); diff != "" {
			fmt.Fprintln(cmd.OutOrStdout(), diff)
		}
	}
}
