package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// replayOutcome is the terminal state of the replay conflict loop.
type replayOutcome int

const (
	replayResolved replayOutcome = iota
	replaySkipped
	replayAborted
)

// Choices offered while a replayed cherry-pick sits in conflict.
const (
	replayChoiceContinue = "continue (I resolved and staged the conflicts)"
	replayChoiceSkip     = "skip (proceed without git's continue)"
	replayChoiceAbort    = "abort the replay"
)

// EditCommitRequest holds the options of one edit-commit invocation.
type EditCommitRequest struct {
	// Branch is the lesson source branch whose commit gets amended.
	Branch string

	// LessonID optionally names the lesson; empty asks interactively.
	LessonID string
}

// EditCommitWorkflow amends an already-pushed lesson commit and replays
// everything that followed it. The rebuilt history is built on the
// current working branch, then optionally saved onto the lesson branch
// and force-pushed.
type EditCommitWorkflow struct {
	git      domain.GitGateway
	resolver domain.Resolver
	prompt   domain.Prompter
	out      domain.UserOutput
	logger   Logger
}

// NewEditCommitWorkflow creates a new EditCommitWorkflow with the given
// dependencies.
func NewEditCommitWorkflow(
	git domain.GitGateway,
	resolver domain.Resolver,
	prompt domain.Prompter,
	out domain.UserOutput,
	log Logger,
) *EditCommitWorkflow {
	return &EditCommitWorkflow{
		git:      git,
		resolver: resolver,
		prompt:   prompt,
		out:      out,
		logger:   log,
	}
}

// Run executes the edit-commit workflow.
func (w *EditCommitWorkflow) Run(ctx context.Context, req EditCommitRequest) error {
	if err := w.git.EnsureRepo(ctx); err != nil {
		return err
	}
	if err := w.git.FetchOrigin(ctx); err != nil {
		return err
	}

	current, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == req.Branch {
		return fmt.Errorf("%w: %s", domain.ErrSameBranch, req.Branch)
	}

	resolved, err := w.resolver.Resolve(ctx, domain.ResolveRequest{
		Branch:   req.Branch,
		LessonID: req.LessonID,
	})
	if err != nil {
		return err
	}

	// The resolver strips the lesson id from the message; restore it so
	// the amended commit parses the same way the original did.
	message := resolved.Commit.TaggedMessage()

	targetSha, err := w.git.RevParse(ctx, resolved.Commit.ShortHash)
	if err != nil {
		return err
	}
	originTip, err := w.git.RevParse(ctx, "origin/"+req.Branch)
	if err != nil {
		return err
	}
	count, err := w.git.RevListCount(ctx, targetSha, originTip)
	if err != nil {
		return err
	}

	w.logger.Info(ctx, "editing lesson commit", map[string]interface{}{
		"lesson_id":         resolved.LessonID,
		"sha":               targetSha,
		"following_commits": count,
	})
	w.out.Infof("Lesson %s is followed by %d commits on origin/%s.", resolved.LessonID, count, req.Branch)

	// Unpack the lesson commit into the working tree for editing.
	if err := w.git.ResetHard(ctx, targetSha); err != nil {
		return err
	}
	if err := w.git.UndoLastCommit(ctx); err != nil {
		return err
	}
	if err := w.git.RestoreStaged(ctx); err != nil {
		return err
	}
	w.out.Infof("The lesson's changes are unstaged on %s. Edit the files now.", current)

	ready, err := w.prompt.Confirm(ctx, "Ready to commit the edited lesson?", true)
	if err != nil {
		return err
	}
	if !ready {
		return domain.ErrCancelled
	}

	if err := w.git.StageAll(ctx); err != nil {
		return err
	}
	if err := w.git.Commit(ctx, message); err != nil {
		return err
	}

	if count > 0 {
		outcome, err := w.replay(ctx, targetSha, originTip)
		if err != nil {
			return err
		}
		if outcome == replayAborted {
			w.out.Warnf("Replay aborted; %s keeps only the amended lesson commit.", current)
			return domain.ErrCancelled
		}
	}

	return w.save(ctx, req, resolved, current)
}

// replay cherry-picks the commits that followed the target onto the
// rebuilt history. Conflicts loop through continue/skip/abort until one
// path terminates.
func (w *EditCommitWorkflow) replay(ctx context.Context, targetSha, originTip string) (replayOutcome, error) {
	w.out.Infof("Replaying the commits after the lesson.")

	err := w.git.CherryPick(ctx, targetSha+".."+originTip)
	for {
		if err == nil {
			w.out.Successf("Replay finished.")
			return replayResolved, nil
		}

		var conflict *domain.CherryPickConflictError
		if !errors.As(err, &conflict) {
			return replayResolved, err
		}

		status, statusErr := w.git.UncommittedChanges(ctx)
		if statusErr == nil && status.Status != "" {
			w.out.Warnf("The replay stopped on conflicts:\n%s", status.Status)
		} else {
			w.out.Warnf("The replay stopped on conflicts.")
		}

		choice, promptErr := w.prompt.Select(ctx, "How do you want to proceed?", []string{
			replayChoiceContinue,
			replayChoiceSkip,
			replayChoiceAbort,
		})
		if promptErr != nil {
			return replayResolved, promptErr
		}

		switch choice {
		case replayChoiceAbort:
			if abortErr := w.git.CherryPickAbort(ctx); abortErr != nil {
				return replayResolved, abortErr
			}
			return replayAborted, nil
		case replayChoiceSkip:
			// The user settled things outside of git's sequencer.
			return replaySkipped, nil
		default:
			err = w.git.CherryPickContinue(ctx)
		}
	}
}

// save offers to move the lesson branch to the rebuilt history and
// force-push it. Declining either prompt stops cleanly with the work
// kept local.
func (w *EditCommitWorkflow) save(ctx context.Context, req EditCommitRequest, resolved domain.ResolvedLesson, workingBranch string) error {
	saveIt, err := w.prompt.Confirm(ctx, fmt.Sprintf("Save this state to branch %s?", req.Branch), true)
	if err != nil {
		return err
	}
	if !saveIt {
		w.out.Infof("Not saved; the rebuilt history stays on %s only.", workingBranch)
		return nil
	}

	tip, err := w.git.RevParse(ctx, "HEAD")
	if err != nil {
		return err
	}
	if err := w.git.Checkout(ctx, req.Branch); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", req.Branch, err)
	}
	if err := w.git.ResetHard(ctx, tip); err != nil {
		return fmt.Errorf("failed to reset %s, which is still checked out: %w", req.Branch, err)
	}

	push, err := w.prompt.Confirm(ctx, fmt.Sprintf("Force-push %s to origin (with lease)?", req.Branch), false)
	if err != nil {
		return err
	}
	if !push {
		w.out.Infof("Not pushed; push later with: git push --force-with-lease origin %s", req.Branch)
		return nil
	}

	if err := w.git.PushForceWithLease(ctx, "origin", req.Branch); err != nil {
		return err
	}

	// Best-effort return to the branch the user started on.
	if err := w.git.Checkout(ctx, workingBranch); err != nil {
		w.logger.Warn(ctx, "could not switch back to the working branch", map[string]interface{}{
			"branch": workingBranch,
		})
	}

	w.out.Successf("Lesson %s amended and pushed to origin/%s.", resolved.LessonID, req.Branch)
	return nil
}
