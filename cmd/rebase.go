package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for rebase-to-main.
var rebaseTarget string

// NewRebaseToMainCmd creates the rebase-to-main command.
func NewRebaseToMainCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebase-to-main",
		Short: "Rebase a course branch onto the main branch",
		Long: `rebase-to-main rebases a branch onto the main branch and offers to
force-push it with a lease. It only runs while the main branch itself is
checked out, so a half-finished working branch never gets rewritten by
accident.

Examples:
  # Rebase the lessons branch onto main and push it
  lessonctl rebase-to-main --target lessons`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebaseToMain(cmd, deps)
		},
	}

	cmd.Flags().StringVarP(&rebaseTarget, "target", "t", "", "Branch to rebase onto the main branch")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// runRebaseToMain wires the rebase-to-main workflow with injected
// dependencies.
func runRebaseToMain(cmd *cobra.Command, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	workflow := usecases.NewRebaseToMainWorkflow(git, deps.PrompterFactory(), deps.OutputFactory(deps.Stdout), s.cfg.MainBranch, s.log)
	return workflow.Run(s.ctx, usecases.RebaseToMainRequest{Target: rebaseTarget})
}
