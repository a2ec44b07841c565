package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// PullWorkflow merges the course upstream's main branch into the current
// working branch. It refuses to run on the main branch itself.
type PullWorkflow struct {
	git        domain.GitGateway
	prompt     domain.Prompter
	out        domain.UserOutput
	mainBranch string
	logger     Logger
}

// NewPullWorkflow creates a new PullWorkflow with the given
// dependencies.
func NewPullWorkflow(
	git domain.GitGateway,
	prompt domain.Prompter,
	out domain.UserOutput,
	mainBranch string,
	log Logger,
) *PullWorkflow {
	return &PullWorkflow{
		git:        git,
		prompt:     prompt,
		out:        out,
		mainBranch: mainBranch,
		logger:     log,
	}
}

// Run executes the pull workflow. A merge conflict stops the workflow
// and reports; there is no recovery loop.
func (w *PullWorkflow) Run(ctx context.Context) error {
	if err := w.git.EnsureRepo(ctx); err != nil {
		return err
	}

	current, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == w.mainBranch {
		return fmt.Errorf("%w: switch to a working branch first", domain.ErrMainBranchForbidden)
	}

	remote, err := w.git.DetectUpstreamRemote(ctx)
	if err != nil {
		return err
	}

	upstreamRef := remote.Name + "/" + w.mainBranch
	ok, err := w.prompt.Confirm(ctx, fmt.Sprintf("Merge %s into %s?", upstreamRef, current), true)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}

	if err := w.git.Fetch(ctx, remote.Name, w.mainBranch); err != nil {
		return err
	}

	if err := w.git.Merge(ctx, upstreamRef); err != nil {
		var conflict *domain.MergeConflictError
		if errors.As(err, &conflict) {
			w.out.Warnf("Merge of %s stopped on conflicts.", upstreamRef)
			w.out.Infof("Resolve the conflicts, stage them, then run 'git commit'.")
		}
		return err
	}

	w.logger.Info(ctx, "merged upstream main", map[string]interface{}{
		"remote": remote.Name,
		"into":   current,
	})

	w.out.Successf("Merged %s into %s.", upstreamRef, current)
	return nil
}
