package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/sweep/internal/config"
	"github.com/roach88/sweep/internal/executor"
	"github.com/roach88/sweep/internal/gitcommit"
	"github.com/roach88/sweep/internal/project"
)

// CleanOptions holds flags for the clean command.
type CleanOptions struct {
	*RootOptions
	Feature string
	Dir     string
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CleanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clean [--feature <name>] [--dir <path>] [-- <command> [args...]]",
		Short: "Run the configured clean command at the project root",
		Long: `Run a clean command inside the project, remembering the invocation.

The project root is found through the SWEEP_PROJECT_ROOT environment
variable, or by walking upward until a .sweep directory or .sweep.yaml
file appears, falling back to the working directory. The directory and
command are merged with values persisted under the selected feature
namespace, so a bare "sweep clean" replays the previous run exactly.

Example:
  sweep clean --dir build -- make clean
  sweep clean --feature release -- ninja -t clean
  sweep clean`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Feature, "feature", "", `configuration namespace (default "default")`)
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to run the command in, relative to the project root")

	return cmd
}

// RunReport summarizes a successful run for the output formatter.
type RunReport struct {
	Root       string `json:"root"`
	Dir        string `json:"dir"`
	Command    string `json:"command"`
	Feature    string `json:"feature"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
	AutoCommit string `json:"auto_commit"`
}

func runClean(opts *CleanOptions, argv []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return WrapExitError(ExitFailure, "cannot determine working directory", err)
	}

	root := project.NewResolver().Resolve(cwd)
	slog.Info("project root resolved", "root", root, "cwd", project.RelativeDir(root, cwd))

	settings, err := project.LoadSettings(root)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load project settings", err)
	}

	feature := opts.Feature
	if feature == "" {
		feature = settings.Feature
	}
	if feature == "" {
		feature = config.DefaultFeature
	}

	toolPath := config.ResolveToolPath(settings.ConfigTool)
	store, err := config.NewToolStore(toolPath, root)
	if err != nil {
		return WrapExitError(ExitFailure, "config tool unavailable", err)
	}

	inv, err := config.Reconcile(store, feature, opts.Dir, argv)
	if err != nil {
		var missing *config.MissingArgumentError
		if errors.As(err, &missing) {
			return WrapExitError(ExitCommandError, "cannot resolve clean invocation", err)
		}
		return WrapExitError(ExitFailure, "cannot resolve clean invocation", err)
	}

	// First side effect: the configuration directory is created only once
	// both fields have resolved, right before the pair is persisted.
	if err := project.EnsureConfigDir(root); err != nil {
		return WrapExitError(ExitFailure, "cannot create configuration directory", err)
	}

	if err := config.Persist(store, feature, inv); err != nil {
		return WrapExitError(ExitFailure, "failed to persist configuration", err)
	}

	execDir := inv.Dir
	if !filepath.IsAbs(execDir) {
		execDir = filepath.Join(root, execDir)
	}
	commandLine := config.JoinCommand(inv.Argv)

	slog.Info("running clean command", "dir", execDir, "command", commandLine, "feature", feature)
	res, execErr := executor.Execute(ctx, execDir, inv.Argv, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// The configuration was already persisted, so the auto-commit agent
	// runs whether or not the command itself succeeded. Its outcome never
	// changes the exit code.
	outcome := gitcommit.New(settings.CommitPrefix).MaybeCommit(project.ConfigDir(root))
	switch outcome.Status {
	case gitcommit.Warned:
		slog.Warn("auto-commit failed", "error", outcome.Err)
	case gitcommit.Committed:
		slog.Info("auto-commit created", "hash", outcome.Hash)
	default:
		slog.Debug("auto-commit outcome", "outcome", outcome.String())
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if execErr != nil {
		var exitErr *executor.ExitStatusError
		if errors.As(execErr, &exitErr) {
			if opts.Format == "json" {
				_ = formatter.Error("command_failed", execErr.Error())
			}
			return WrapExitError(exitErr.Code, "clean command failed", execErr)
		}

		var dirErr *executor.DirectoryError
		if errors.As(execErr, &dirErr) {
			return WrapExitError(ExitFailure, "clean directory does not exist", execErr)
		}
		return WrapExitError(ExitFailure, "cannot run clean command", execErr)
	}

	report := RunReport{
		Root:       root,
		Dir:        inv.Dir,
		Command:    commandLine,
		Feature:    feature,
		ExitCode:   res.ExitCode,
		DurationMS: res.Duration.Milliseconds(),
		AutoCommit: outcome.String(),
	}

	if opts.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Clean command succeeded (exit %d, %dms)\n", report.ExitCode, report.DurationMS)
	fmt.Fprintf(formatter.Writer, "  %s in %s\n", report.Command, report.Dir)
	fmt.Fprintf(formatter.Writer, "  auto-commit: %s\n", report.AutoCommit)
	return nil
}
