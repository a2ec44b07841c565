package cmd

import (
	"github.com/spf13/cobra"

	"github.com/courselab/lessonctl/internal/usecases"
)

// Command-line flags for walk-through.
var (
	walkLiveBranch string
	walkMainBranch string
)

// NewWalkThroughCmd creates the walk-through command.
func NewWalkThroughCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk-through",
		Short: "Step through a branch's commits for presentation",
		Long: `walk-through unpacks each commit of a live-coding branch into the
working tree one at a time, oldest first, pausing between commits. Only
commits beyond the main branch are walked.

Whatever happens during the walk, the branch is reset to its original
tip at the end.

Examples:
  # Present the live branch commit by commit
  lessonctl walk-through --live-branch live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkThrough(cmd, deps)
		},
	}

	cmd.Flags().StringVar(&walkLiveBranch, "live-branch", "", "Branch being presented")
	cmd.Flags().StringVar(&walkMainBranch, "main-branch", "", "Base of the walked range (defaults to the configured main branch)")
	_ = cmd.MarkFlagRequired("live-branch")

	return cmd
}

// runWalkThrough wires the walk-through workflow with injected
// dependencies.
func runWalkThrough(cmd *cobra.Command, deps *Dependencies) error {
	s, err := newSession(cmd, deps)
	if err != nil {
		return err
	}

	mainBranch := walkMainBranch
	if mainBranch == "" {
		mainBranch = s.cfg.MainBranch
	}

	git := deps.GatewayFactory(cwd, s.cfg.UpstreamOrgs, s.log)
	workflow := usecases.NewWalkThroughWorkflow(git, deps.PrompterFactory(), deps.OutputFactory(deps.Stdout), s.log)
	return workflow.Run(s.ctx, usecases.WalkThroughRequest{
		MainBranch: mainBranch,
		LiveBranch: walkLiveBranch,
	})
}
