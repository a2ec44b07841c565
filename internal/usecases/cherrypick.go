package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// CherryPickRequest holds the options of one cherry-pick invocation.
type CherryPickRequest struct {
	// Branch is the lesson source branch.
	Branch string

	// LessonID optionally names the lesson; empty asks interactively.
	LessonID string
}

// CherryPickWorkflow applies a single lesson commit onto the current
// branch. Lessons already present on the current branch are not offered.
type CherryPickWorkflow struct {
	git        domain.GitGateway
	resolver   domain.Resolver
	prompt     domain.Prompter
	out        domain.UserOutput
	mainBranch string
	logger     Logger
}

// NewCherryPickWorkflow creates a new CherryPickWorkflow with the given
// dependencies.
func NewCherryPickWorkflow(
	git domain.GitGateway,
	resolver domain.Resolver,
	prompt domain.Prompter,
	out domain.UserOutput,
	mainBranch string,
	log Logger,
) *CherryPickWorkflow {
	return &CherryPickWorkflow{
		git:        git,
		resolver:   resolver,
		prompt:     prompt,
		out:        out,
		mainBranch: mainBranch,
		logger:     log,
	}
}

// Run executes the cherry-pick workflow. A conflict is reported with
// guidance and left for the user to resolve by hand; there is no
// conflict loop here.
func (w *CherryPickWorkflow) Run(ctx context.Context, req CherryPickRequest) error {
	if err := w.git.EnsureRepo(ctx); err != nil {
		return err
	}

	remote, err := w.git.DetectUpstreamRemote(ctx)
	if err != nil {
		return err
	}
	if err := w.git.EnsureUpstreamBranch(ctx, remote.Name, req.Branch); err != nil {
		return err
	}

	resolved, err := w.resolver.Resolve(ctx, domain.ResolveRequest{
		Branch:         req.Branch,
		LessonID:       req.LessonID,
		ExcludeCurrent: true,
	})
	if err != nil {
		return err
	}

	current, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == req.Branch {
		return fmt.Errorf("%w: %s", domain.ErrSameBranch, req.Branch)
	}

	// Never cherry-pick onto main directly; branch off it first.
	if current == w.mainBranch {
		name, err := w.prompt.Input(ctx, "Name the new branch", "my-"+resolved.LessonID)
		if err != nil {
			return err
		}
		if err := w.git.CheckoutNewBranch(ctx, name); err != nil {
			return err
		}
		current = name
		w.out.Infof("Created branch %s off %s.", name, w.mainBranch)
	}

	w.logger.Info(ctx, "cherry-picking lesson", map[string]interface{}{
		"lesson_id": resolved.LessonID,
		"sha":       resolved.Commit.ShortHash,
		"onto":      current,
	})

	if err := w.git.CherryPick(ctx, resolved.Commit.ShortHash); err != nil {
		var conflict *domain.CherryPickConflictError
		if errors.As(err, &conflict) {
			w.out.Warnf("Cherry-pick of lesson %s hit conflicts.", resolved.LessonID)
			w.out.Infof("Resolve the conflicts and run 'git cherry-pick --continue' (or 'git cherry-pick --abort').")
		}
		return err
	}

	w.out.Successf("Lesson %s cherry-picked onto %s.", resolved.LessonID, current)
	return nil
}
