package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for cherry-pick.
var cherryPickBranch string

// NewCherryPickCmd creates the cherry-pick command.
func NewCherryPickCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cherry-pick [lesson]",
		Short: "Apply one lesson commit onto the current branch",
		Long: `cherry-pick applies a single lesson commit from the lesson branch onto
the branch you are on. Lessons already present on the current branch are
not offered. On the main branch a new branch is created first.

A conflicted cherry-pick is left in place for you to resolve with the
usual git commands.

Examples:
  # Pick a lesson interactively
  lessonctl cherry-pick --branch lessons

  # Apply lesson 1.2.3 directly
  lessonctl cherry-pick 1.2.3 --branch lessons`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCherryPick(cmd, args, deps)
		},
	}

	cmd.Flags().StringVarP(&cherryPickBranch, "branch", "b", "", "Lesson source branch")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}

// runCherryPick wires the cherry-pick workflow with injected
// dependencies.
func runCherryPick(cmd *cobra.Command, args []string, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	prompt := deps.PrompterFactory()
	resolver := deps.ResolverFactory(git, prompt, s.log)

	workflow := usecases.NewCherryPickWorkflow(git, resolver, prompt, deps.OutputFactory(deps.Stdout), s.cfg.MainBranch, s.log)
	return workflow.Run(s.ctx, usecases.CherryPickRequest{
		Branch:   cherryPickBranch,
		LessonID: lessonArg(args),
	})
}
