package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotARepo indicates the working directory has no .git directory
	// at its root.
	ErrNotARepo = errors.New("not a git repository")

	// ErrCancelled indicates the user aborted an interactive prompt or
	// declined to continue. It maps to a successful exit.
	ErrCancelled = errors.New("cancelled")

	// ErrNoUpstreamRemote indicates no configured remote points at a
	// recognized course organization.
	ErrNoUpstreamRemote = errors.New("no upstream course remote found")

	// ErrNoParentCommit indicates a commit has no parent, so no problem
	// state exists for its lesson.
	ErrNoParentCommit = errors.New("commit has no parent")

	// ErrSameBranch indicates the requested source branch is the branch
	// currently checked out.
	ErrSameBranch = errors.New("already on the requested branch")

	// ErrOptionConflict indicates mutually exclusive command options were
	// combined.
	ErrOptionConflict = errors.New("conflicting options")

	// ErrMainBranchOnly indicates an operation that must start from the
	// main branch was invoked elsewhere.
	ErrMainBranchOnly = errors.New("operation requires the main branch")

	// ErrMainBranchForbidden indicates an operation that must not run on
	// the main branch was invoked there.
	ErrMainBranchForbidden = errors.New("operation not allowed on the main branch")

	// ErrBrokenLinks indicates lesson documentation references files that
	// do not exist.
	ErrBrokenLinks = errors.New("broken file links")

	// ErrNoEntrypoint indicates an exercise has no runnable entry file or
	// no runner is configured for its file type.
	ErrNoEntrypoint = errors.New("no runnable entrypoint")
)

// GitError is a failed git invocation. Err is set when the process could
// not be started; otherwise ExitCode and Output carry the failure.
type GitError struct {
	Op       string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *GitError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, cmd, e.Err)
	}
	msg := fmt.Sprintf("%s: %s exited with code %d", e.Op, cmd, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// LessonNotFoundError indicates no commit on the searched branch carries
// the requested lesson identifier.
type LessonNotFoundError struct {
	// LessonID is the canonical identifier searched for, or "any" when no
	// lesson-tagged commit exists at all.
	LessonID string

	// Branch is the branch that was searched.
	Branch string
}

func (e *LessonNotFoundError) Error() string {
	return fmt.Sprintf("no commit for lesson %q found on branch %q", e.LessonID, e.Branch)
}

// CherryPickConflictError indicates a cherry-pick stopped on conflicts.
// The repository is left mid-operation for the user to resolve.
type CherryPickConflictError struct {
	// Range is the commit or range being picked.
	Range string

	// Output is git's combined output.
	Output string
}

func (e *CherryPickConflictError) Error() string {
	return fmt.Sprintf("cherry-pick of %s stopped on conflicts", e.Range)
}

// MergeConflictError indicates a merge stopped on conflicts.
type MergeConflictError struct {
	Ref    string
	Output string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge of %s stopped on conflicts", e.Ref)
}

// RebaseConflictError indicates a rebase stopped on conflicts.
type RebaseConflictError struct {
	Onto   string
	Output string
}

func (e *RebaseConflictError) Error() string {
	return fmt.Sprintf("rebase onto %s stopped on conflicts", e.Onto)
}

// BrokenLink is one documentation link whose target file does not exist.
type BrokenLink struct {
	// Readme is the documentation file containing the link.
	Readme string

	// Target is the linked path that could not be found.
	Target string
}
