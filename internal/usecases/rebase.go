package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// RebaseToMainRequest holds the options of one rebase-to-main
// invocation.
type RebaseToMainRequest struct {
	// Target is the branch to rebase onto the main branch.
	Target string
}

// RebaseToMainWorkflow rebases a branch onto the main branch and
// optionally force-pushes it. It only runs while the main branch is
// checked out.
type RebaseToMainWorkflow struct {
	git        domain.GitGateway
	prompt     domain.Prompter
	out        domain.UserOutput
	mainBranch string
	logger     Logger
}

// NewRebaseToMainWorkflow creates a new RebaseToMainWorkflow with the
// given dependencies.
func NewRebaseToMainWorkflow(
	git domain.GitGateway,
	prompt domain.Prompter,
	out domain.UserOutput,
	mainBranch string,
	log Logger,
) *RebaseToMainWorkflow {
	return &RebaseToMainWorkflow{
		git:        git,
		prompt:     prompt,
		out:        out,
		mainBranch: mainBranch,
		logger:     log,
	}
}

// Run executes the rebase-to-main workflow. A conflict stops the
// workflow and reports; there is no recovery loop.
func (w *RebaseToMainWorkflow) Run(ctx context.Context, req RebaseToMainRequest) error {
	if err := w.git.EnsureRepo(ctx); err != nil {
		return err
	}

	current, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != w.mainBranch {
		return fmt.Errorf("%w: currently on %q", domain.ErrMainBranchOnly, current)
	}

	ok, err := w.prompt.Confirm(ctx, fmt.Sprintf("Rebase %s onto %s?", req.Target, w.mainBranch), false)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}

	if err := w.git.Checkout(ctx, req.Target); err != nil {
		return err
	}

	if err := w.git.Rebase(ctx, w.mainBranch); err != nil {
		var conflict *domain.RebaseConflictError
		if errors.As(err, &conflict) {
			w.out.Warnf("Rebase of %s onto %s stopped on conflicts.", req.Target, w.mainBranch)
			w.out.Infof("Resolve the conflicts, run 'git rebase --continue', then push manually.")
		}
		return err
	}

	w.logger.Info(ctx, "rebased branch onto main", map[string]interface{}{
		"target": req.Target,
		"main":   w.mainBranch,
	})

	push, err := w.prompt.Confirm(ctx, fmt.Sprintf("Force-push %s to origin (with lease)?", req.Target), false)
	if err != nil {
		return err
	}
	if push {
		if err := w.git.PushForceWithLease(ctx, "origin", req.Target); err != nil {
			return err
		}
	}

	if err := w.git.Checkout(ctx, w.mainBranch); err != nil {
		return err
	}

	if !push {
		w.out.Infof("Not pushed; %s stays rebased locally.", req.Target)
		return nil
	}

	w.out.Successf("%s rebased onto %s and pushed.", req.Target, w.mainBranch)
	return nil
}
