// Package cmd provides the CLI commands for lessonctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/domain"
)

// Logger defines the logging interface used by the commands.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the commands.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// ConfigLoader loads the course configuration from the working
	// directory.
	ConfigLoader func(dir string) (*AppConfig, error)

	// LoggerFactory creates a logger for the given level.
	LoggerFactory func(level string) (Logger, error)

	// GatewayFactory creates the git gateway for the working directory.
	GatewayFactory func(dir string, upstreamOrgs []string, log Logger) domain.GitGateway

	// PrompterFactory creates the interactive terminal prompter.
	PrompterFactory func() domain.Prompter

	// OutputFactory creates the user-facing status output writing to w.
	OutputFactory func(w io.Writer) domain.UserOutput

	// ResolverFactory creates the lesson resolver with the given
	// dependencies.
	ResolverFactory func(git domain.GitGateway, prompt domain.Prompter, log Logger) domain.Resolver

	// ScannerFactory creates the course tree scanner.
	ScannerFactory func() domain.CourseScanner

	// RendererFactory creates the markdown renderer for exercise
	// readmes.
	RendererFactory func() (domain.MarkdownRenderer, error)

	// RunnerFactory creates the process runner for exercise entry files.
	RunnerFactory func() domain.ProcessRunner

	// Stdout is the writer for standard output.
	Stdout io.Writer

	// Stderr is the writer for warnings and errors.
	Stderr io.Writer
}

// AppConfig holds the course configuration loaded by ConfigLoader.
type AppConfig struct {
	// CourseName is the display name of the course.
	CourseName string

	// MainBranch is the branch carrying the published lesson history.
	MainBranch string

	// LessonRoot is the lesson material directory, relative to the
	// working directory.
	LessonRoot string

	// UpstreamOrgs are the organizations recognized as course upstreams.
	UpstreamOrgs []string

	// Entrypoints maps entry file extensions to runner commands.
	Entrypoints map[string][]string

	// LogLevel is the log level setting.
	LogLevel string
}

// Command-line flags shared by every subcommand.
var (
	cwd     string
	verbose bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for lessonctl.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lessonctl",
		Short: "Navigate a git-based coding course",
		Long: `lessonctl navigates the git history of a coding course.

Lessons live as commits on a shared lesson branch, tagged with an
identifier like 01.02.03 at the start of the commit message. The
subcommands fetch those commits and move your working tree between
lesson states, apply single lessons to your own branch, and run the
lesson exercises checked out on disk.

Examples:
  # Reset to a lesson, picked interactively from the lessons branch
  lessonctl reset --branch lessons

  # Apply one lesson commit onto your current branch
  lessonctl cherry-pick 1.2.3 --branch lessons

  # Run an exercise's entry file
  lessonctl run 1.2`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cwd, "cwd", ".",
		"Working directory holding the course repository")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	rootCmd.AddCommand(
		NewResetCmd(deps),
		NewCherryPickCmd(deps),
		NewEditCommitCmd(deps),
		NewWalkThroughCmd(deps),
		NewRebaseToMainCmd(deps),
		NewPullCmd(deps),
		NewRunCmd(deps),
		NewLintCmd(deps),
	)

	return rootCmd
}

// session holds what every subcommand builds before running its
// workflow.
type session struct {
	ctx context.Context
	cfg *AppConfig
	log Logger
}

// newSession loads the configuration and creates the logger, honoring
// the persistent flags.
func newSession(cmd *cobra.Command, deps *Dependencies) (*session, error) {
	if deps == nil {
		return nil, errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := deps.ConfigLoader(cwd)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := deps.LoggerFactory(level)
	if err != nil {
		return nil, err
	}

	return &session{ctx: ctx, cfg: cfg, log: log}, nil
}

// lessonArg returns the optional lesson identifier argument.
func lessonArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Execute runs the root command and maps the result to a process exit
// code.
func Execute() int {
	err := NewRootCmd().Execute()

	stderr := io.Writer(os.Stderr)
	if defaultDeps != nil && defaultDeps.Stderr != nil {
		stderr = defaultDeps.Stderr
	}
	return exitCode(err, stderr)
}

// exitCode maps a command error to a process exit code, reporting it on
// w. User cancellation exits cleanly.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, domain.ErrCancelled) {
		fmt.Fprintln(w, "Cancelled.")
		return 0
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
