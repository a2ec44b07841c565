package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for reset.
var (
	resetBranch   string
	resetProblem  bool
	resetSolution bool
	resetDemo     bool
)

// NewResetCmd creates the reset command.
func NewResetCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [lesson]",
		Short: "Move the working tree to a lesson's problem or solution state",
		Long: `reset fetches the lesson branch and moves your working tree to the
problem or solution state of a lesson. Without a lesson argument it
offers a filterable list of the branch's lessons.

The problem state is the commit right before the lesson's solution
commit. On the main branch a new branch is always created instead of
resetting; --demo skips every prompt and unpacks the solution into the
working tree with its changes unstaged.

Examples:
  # Pick a lesson interactively and choose problem or solution
  lessonctl reset --branch lessons

  # Jump straight to the problem of lesson 1.2.3
  lessonctl reset 1.2.3 --branch lessons --problem

  # Unpack the solution for a live demo, no questions asked
  lessonctl reset 1.2.3 --branch lessons --demo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, args, deps)
		},
	}

	cmd.Flags().StringVarP(&resetBranch, "branch", "b", "", "Lesson source branch")
	cmd.Flags().BoolVar(&resetProblem, "problem", false, "Target the lesson's problem state")
	cmd.Flags().BoolVar(&resetSolution, "solution", false, "Target the lesson's solution state")
	cmd.Flags().BoolVar(&resetDemo, "demo", false, "Unpack the solution without prompts")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}

// runReset wires the reset workflow with injected dependencies.
func runReset(cmd *cobra.Command, args []string, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	prompt := deps.PrompterFactory()
	resolver := deps.ResolverFactory(git, prompt, s.log)

	workflow := usecases.NewResetWorkflow(git, resolver, prompt, deps.OutputFactory(deps.Stdout), s.cfg.MainBranch, s.log)
	return workflow.Run(s.ctx, usecases.ResetRequest{
		Branch:   resetBranch,
		LessonID: lessonArg(args),
		Problem:  resetProblem,
		Solution: resetSolution,
		Demo:     resetDemo,
	})
}
