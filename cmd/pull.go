package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// NewPullCmd creates the pull command.
func NewPullCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Merge the course upstream's main branch into the current branch",
		Long: `pull fetches the main branch from the course upstream remote and merges
it into the branch you are on. It refuses to run on the main branch
itself; a conflicted merge is left for you to finish by hand.

Examples:
  # Bring upstream course updates into your working branch
  lessonctl pull`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(cmd, deps)
		},
	}
}

// runPull wires the pull workflow with injected dependencies.
func runPull(cmd *cobra.Command, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	workflow := usecases.NewPullWorkflow(git, deps.PrompterFactory(), deps.OutputFactory(deps.Stdout), s.cfg.MainBranch, s.log)
	return workflow.Run(s.ctx)
}
