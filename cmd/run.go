package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for run.
var runRoot string

// NewRunCmd creates the run command.
func NewRunCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [section.lesson]",
		Short: "Show an exercise's readme and run its entry file",
		Long: `run picks an exercise from the lesson material on disk, renders its
readme in the terminal and executes its entry file with the runner
configured for the file type.

Without an argument the section, lesson and exercise are picked
interactively.

Examples:
  # Pick interactively
  lessonctl run

  # Run an exercise of lesson 2 in section 1
  lessonctl run 1.2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise(cmd, args, deps)
		},
	}

	cmd.Flags().StringVar(&runRoot, "root", "", "Lesson material directory (defaults to the configured lesson root)")

	return cmd
}

// runExercise wires the exercise runner with injected dependencies.
func runExercise(cmd *cobra.Command, args []string, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	renderer, err := deps.RendererFactory()
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	root := runRoot
	if root == "" {
		root = filepath.Join(cwd, s.cfg.LessonRoot)
	}

	runner := usecases.NewExerciseRunner(
		deps.ScannerFactory(),
		deps.PrompterFactory(),
		deps.OutputFactory(deps.Stdout),
		renderer,
		deps.RunnerFactory(),
		s.cfg.Entrypoints,
		s.log,
	)
	return runner.Run(s.ctx, usecases.RunExerciseRequest{
		Root:      root,
		LessonRef: lessonArg(args),
	})
}
