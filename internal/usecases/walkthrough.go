package usecases

import (
	"context"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// WalkThroughRequest holds the options of one walk-through invocation.
type WalkThroughRequest struct {
	// MainBranch is the base of the walked range, exclusive.
	MainBranch string

	// LiveBranch is the branch being presented; its commits beyond
	// MainBranch are walked oldest first.
	LiveBranch string
}

// WalkThroughWorkflow steps through a branch's commits one at a time,
// unpacking each into the working tree for presentation. Whatever
// happens during the walk, the branch ends up reset to its original tip.
type WalkThroughWorkflow struct {
	git    domain.GitGateway
	prompt domain.Prompter
	out    domain.UserOutput
	logger Logger
}

// NewWalkThroughWorkflow creates a new WalkThroughWorkflow with the
// given dependencies.
func NewWalkThroughWorkflow(
	git domain.GitGateway,
	prompt domain.Prompter,
	out domain.UserOutput,
	log Logger,
) *WalkThroughWorkflow {
	return &WalkThroughWorkflow{
		git:    git,
		prompt: prompt,
		out:    out,
		logger: log,
	}
}

// Run executes the walk-through workflow.
func (w *WalkThroughWorkflow) Run(ctx context.Context, req WalkThroughRequest) error {
	if err := w.git.EnsureRepo(ctx); err != nil {
		return err
	}

	// Capture the tip before anything moves; the walk resets the branch
	// ref at every step.
	tip, err := w.git.RevParse(ctx, req.LiveBranch)
	if err != nil {
		return err
	}

	out, err := w.git.LogOnelineReverse(ctx, req.MainBranch+".."+req.LiveBranch)
	if err != nil {
		return err
	}
	commits := domain.ParseOnelineLog(out)
	if len(commits) == 0 {
		w.out.Infof("No commits on %s beyond %s to walk through.", req.LiveBranch, req.MainBranch)
		return nil
	}

	w.logger.Info(ctx, "starting walk-through", map[string]interface{}{
		"live_branch": req.LiveBranch,
		"main_branch": req.MainBranch,
		"commits":     len(commits),
		"tip":         tip,
	})

	walkErr := w.walk(ctx, commits)

	if restoreErr := w.git.ResetHard(ctx, tip); restoreErr != nil {
		w.logger.Error(ctx, "failed to restore the live branch tip", restoreErr, map[string]interface{}{
			"live_branch": req.LiveBranch,
			"tip":         tip,
			"walk_error":  fmt.Sprintf("%v", walkErr),
		})
		return fmt.Errorf("failed to restore %s to %s: %w", req.LiveBranch, tip, restoreErr)
	}

	return walkErr
}

// walk unpacks each commit in order and waits for the user between
// steps.
func (w *WalkThroughWorkflow) walk(ctx context.Context, commits []domain.Commit) error {
	for i, commit := range commits {
		if err := w.git.ResetHard(ctx, commit.ShortHash); err != nil {
			return err
		}
		if err := w.git.UndoLastCommit(ctx); err != nil {
			return err
		}
		if err := w.git.RestoreStaged(ctx); err != nil {
			return err
		}

		w.out.Infof("[%d/%d] %s (%s): changes are unstaged.", i+1, len(commits), commit.TaggedMessage(), commit.ShortHash)

		if i == len(commits)-1 {
			w.out.Successf("Walk-through complete.")
			return nil
		}

		ok, err := w.prompt.Confirm(ctx, "Continue to the next commit?", true)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}
