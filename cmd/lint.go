package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for lint.
var lintRoot string

// NewLintCmd creates the lint command.
func NewLintCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check exercise readmes for broken file links",
		Long: `lint scans the lesson material and checks that every file link in an
exercise readme points at something that exists on disk. External URLs
and in-page anchors are ignored.

Examples:
  # Check the configured lesson root
  lessonctl lint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, deps)
		},
	}

	cmd.Flags().StringVar(&lintRoot, "root", "", "Lesson material directory (defaults to the configured lesson root)")

	return cmd
}

// runLint wires the readme linter with injected dependencies.
func runLint(cmd *cobra.Command, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	root := lintRoot
	if root == "" {
		root = filepath.Join(cwd, s.cfg.LessonRoot)
	}

	linter := usecases.NewLinter(deps.ScannerFactory(), deps.OutputFactory(deps.Stdout), s.log)
	return linter.Run(s.ctx, root)
}
