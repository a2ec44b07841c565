package usecases

import (
	"context"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// Lesson states a reset can target.
const (
	stateProblem  = "problem"
	stateSolution = "solution"
)

// Ways of applying the target commit.
const (
	actionResetCurrent = "reset this branch"
	actionCreateBranch = "create a new branch"
)

// ResetRequest holds the options of one reset invocation.
type ResetRequest struct {
	// Branch is the lesson source branch.
	Branch string

	// LessonID optionally names the lesson; empty asks interactively.
	LessonID string

	// Problem targets the lesson's problem state, the resolved commit's
	// parent.
	Problem bool

	// Solution targets the lesson's solution state.
	Solution bool

	// Demo runs without prompts: reset the current branch to the
	// solution, then unpack it into the working tree.
	Demo bool
}

// ResetWorkflow moves the working tree to a lesson's problem or solution
// state, either by resetting the current branch or by creating a fresh
// one at the target commit.
type ResetWorkflow struct {
	git        domain.GitGateway
	resolver   domain.Resolver
	prompt     domain.Prompter
	out        domain.UserOutput
	mainBranch string
	logger     Logger
}

// NewResetWorkflow creates a new ResetWorkflow with the given
// dependencies.
func NewResetWorkflow(
	git domain.GitGateway,
	resolver domain.Resolver,
	prompt domain.Prompter,
	out domain.UserOutput,
	mainBranch string,
	log Logger,
) *ResetWorkflow {
	return &ResetWorkflow{
		git:        git,
		resolver:   resolver,
		prompt:     prompt,
		out:        out,
		mainBranch: mainBranch,
		logger:     log,
	}
}

// Run executes the reset workflow. Option validation happens before any
// git invocation.
func (w *ResetWorkflow) Run(ctx context.Context, req ResetRequest) error {
	if req.Problem && req.Solution {
		return fmt.Errorf("%w: --problem and --solution", domain.ErrOptionConflict)
	}
	if req.Demo && (req.Problem || req.Solution) {
		return fmt.Errorf("%w: --demo with --problem or --solution", domain.ErrOptionConflict)
	}

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
		Branch:   req.Branch,
		LessonID: req.LessonID,
	})
	if err != nil {
		return err
	}

	state, targetSha, err := w.targetFor(ctx, req, resolved)
	if err != nil {
		return err
	}

	w.logger.Info(ctx, "reset target selected", map[string]interface{}{
		"lesson_id": resolved.LessonID,
		"state":     state,
		"sha":       targetSha,
	})

	current, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	action, err := w.pickAction(ctx, req, current)
	if err != nil {
		return err
	}

	if action == actionCreateBranch {
		return w.createBranchAt(ctx, resolved, state, targetSha)
	}
	return w.resetCurrent(ctx, req, resolved, state, current, targetSha)
}

// targetFor decides between the problem and solution state and resolves
// the commit to reset to. The problem state is the lesson commit's
// parent.
func (w *ResetWorkflow) targetFor(ctx context.Context, req ResetRequest, resolved domain.ResolvedLesson) (string, string, error) {
	state := stateSolution
	switch {
	case req.Demo, req.Solution:
		// Solution already chosen.
	case req.Problem:
		state = stateProblem
	default:
		choice, err := w.prompt.Select(
			ctx,
			fmt.Sprintf("Reset to the problem or the solution of lesson %s?", resolved.LessonID),
			[]string{stateProblem, stateSolution},
		)
		if err != nil {
			return "", "", err
		}
		state = choice
	}

	if state == stateProblem {
		parent, err := w.git.RevParse(ctx, resolved.Commit.ShortHash+"^")
		if err != nil {
			return "", "", fmt.Errorf("%w: lesson %s: %w", domain.ErrNoParentCommit, resolved.LessonID, err)
		}
		return state, parent, nil
	}

	sha, err := w.git.RevParse(ctx, resolved.Commit.ShortHash)
	if err != nil {
		return "", "", err
	}
	return state, sha, nil
}

// pickAction decides how the target commit is applied. On the main
// branch a new branch is always created; demo mode always resets the
// current branch.
func (w *ResetWorkflow) pickAction(ctx context.Context, req ResetRequest, current string) (string, error) {
	if current == w.mainBranch {
		w.out.Infof("You are on %s, so a new branch will be created.", w.mainBranch)
		return actionCreateBranch, nil
	}
	if req.Demo {
		return actionResetCurrent, nil
	}
	return w.prompt.Select(ctx, "Apply the lesson how?", []string{actionResetCurrent, actionCreateBranch})
}

func (w *ResetWorkflow) resetCurrent(
	ctx context.Context,
	req ResetRequest,
	resolved domain.ResolvedLesson,
	state, current, targetSha string,
) error {
	if current == req.Branch {
		return fmt.Errorf("%w: %s", domain.ErrSameBranch, req.Branch)
	}

	if !req.Demo {
		status, err := w.git.UncommittedChanges(ctx)
		if err != nil {
			return err
		}
		if status.Dirty {
			w.out.Warnf("Uncommitted changes:\n%s", status.Status)
			ok, err := w.prompt.Confirm(ctx, "Discard these changes and reset?", false)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrCancelled
			}
		}
	}

	if err := w.git.ResetHard(ctx, targetSha); err != nil {
		return err
	}

	if req.Demo {
		if err := w.git.UndoLastCommit(ctx); err != nil {
			return err
		}
		if err := w.git.RestoreStaged(ctx); err != nil {
			return err
		}
		w.out.Successf("Lesson %s is unpacked on %s; its changes are unstaged.", resolved.LessonID, current)
		return nil
	}

	w.out.Successf("Branch %s now points at the %s of lesson %s.", current, state, resolved.LessonID)
	return nil
}

func (w *ResetWorkflow) createBranchAt(ctx context.Context, resolved domain.ResolvedLesson, state, targetSha string) error {
	name, err := w.prompt.Input(ctx, "Name the new branch", "my-"+resolved.LessonID)
	if err != nil {
		return err
	}

	if err := w.git.CheckoutNewBranchAt(ctx, name, targetSha); err != nil {
		return err
	}

	w.out.Successf("Created branch %s at the %s of lesson %s.", name, state, resolved.LessonID)
	return nil
}
