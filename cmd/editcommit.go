package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for edit-commit.
var editCommitBranch string

// NewEditCommitCmd creates the edit-commit command.
func NewEditCommitCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit-commit [lesson]",
		Short: "Amend a pushed lesson commit and replay what followed",
		Long: `edit-commit rewrites a lesson commit that is already on origin. The
lesson's changes are unpacked into your working tree for editing, then
recommitted under the original message, and every commit that followed
it on the lesson branch is replayed on top.

The rebuilt history stays on your current branch until you confirm
saving it to the lesson branch and force-pushing with a lease.

Examples:
  # Amend lesson 1.2.3 on the lessons branch
  lessonctl edit-commit 1.2.3 --branch lessons`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditCommit(cmd, args, deps)
		},
	}

	cmd.Flags().StringVarP(&editCommitBranch, "branch", "b", "", "Lesson source branch")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}

// runEditCommit wires the edit-commit workflow with injected
// dependencies.
func runEditCommit(cmd *cobra.Command, args []string, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	prompt := deps.PrompterFactory()
	resolver := deps.ResolverFactory(git, prompt, s.log)

	workflow := usecases.NewEditCommitWorkflow(git, resolver, prompt, deps.OutputFactory(deps.Stdout), s.log)
	return workflow.Run(s.ctx, usecases.EditCommitRequest{
		Branch:   editCommitBranch,
		LessonID: lessonArg(args),
	})
}
