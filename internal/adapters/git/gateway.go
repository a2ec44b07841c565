// Package git provides the adapter for running git operations against a
// local repository. Mutating operations shell out to the git binary;
// read-only repository inspection uses go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/courselab/lessonctl/internal/domain"
)

// Gateway implements domain.GitGateway for a single working directory.
type Gateway struct {
	dir     string
	run     domain.ProcessRunner
	inspect *Inspector
	logger  Logger
}

// NewGateway creates a Gateway rooted at dir. upstreamOrgs are the
// organization names recognized as course upstreams.
func NewGateway(dir string, run domain.ProcessRunner, upstreamOrgs []string, log Logger) *Gateway {
	return &Gateway{
		dir:     dir,
		run:     run,
		inspect: NewInspector(dir, upstreamOrgs, log),
		logger:  log,
	}
}

// git runs a single git command in the working directory. Failures come
// back as *domain.GitError: Err set when the process never started,
// ExitCode and Output set when it ran and failed.
func (g *Gateway) git(ctx context.Context, op string, args ...string) (string, error) {
	g.logger.Debug(ctx, "running git", map[string]interface{}{
		"op":   op,
		"args": strings.Join(args, " "),
	})

	result, err := g.run.Run(ctx, g.dir, "git", args...)
	if err != nil {
		return "", &domain.GitError{Op: op, Args: args, Err: err}
	}
	if result.ExitCode != 0 {
		return "", &domain.GitError{
			Op:       op,
			Args:     args,
			ExitCode: result.ExitCode,
			Output:   result.Output,
		}
	}
	return result.Output, nil
}

// asExitFailure returns the *domain.GitError when err is a git process
// that ran and exited nonzero. Spawn failures return nil so they are
// never mistaken for conflicts.
func asExitFailure(err error) *domain.GitError {
	var gitErr *domain.GitError
	if errors.As(err, &gitErr) && gitErr.Err == nil {
		return gitErr
	}
	return nil
}

// EnsureRepo verifies a git repository exists at the working directory
// root.
func (g *Gateway) EnsureRepo(ctx context.Context) error {
	return g.inspect.EnsureRepo(ctx)
}

// CurrentBranch returns the checked-out branch name, empty for a
// detached HEAD.
func (g *Gateway) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.git(ctx, "current-branch", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", nil
	}
	return branch, nil
}

// UncommittedChanges reads the porcelain status of the working tree.
func (g *Gateway) UncommittedChanges(ctx context.Context) (domain.WorkTreeStatus, error) {
	out, err := g.git(ctx, "status", "status", "--porcelain")
	if err != nil {
		return domain.WorkTreeStatus{}, err
	}
	trimmed := strings.TrimSpace(out)
	return domain.WorkTreeStatus{Dirty: trimmed != "", Status: trimmed}, nil
}

// DetectUpstreamRemote finds the configured remote pointing at a course
// organization.
func (g *Gateway) DetectUpstreamRemote(ctx context.Context) (domain.Remote, error) {
	return g.inspect.DetectUpstreamRemote(ctx)
}

// Fetch fetches a single branch from a remote.
func (g *Gateway) Fetch(ctx context.Context, remote, branch string) error {
	_, err := g.git(ctx, "fetch", "fetch", remote, branch)
	return err
}

// FetchOrigin fetches all branches from origin.
func (g *Gateway) FetchOrigin(ctx context.Context) error {
	_, err := g.git(ctx, "fetch", "fetch", "origin")
	return err
}

// EnsureUpstreamBranch recreates the local tracking branch for
// remote/branch: fetch, force-delete any stale local copy, create it
// fresh with tracking configured. The delete is allowed to fail since
// the local branch may not exist yet.
func (g *Gateway) EnsureUpstreamBranch(ctx context.Context, remote, branch string) error {
	if err := g.Fetch(ctx, remote, branch); err != nil {
		return err
	}

	if _, err := g.git(ctx, "ensure-upstream-branch", "branch", "-D", branch); err != nil {
		g.logger.Debug(ctx, "no stale local branch to delete", map[string]interface{}{
			"branch": branch,
		})
	}

	_, err := g.git(ctx, "ensure-upstream-branch", "branch", "--track", branch, remote+"/"+branch)
	return err
}

// RevParse resolves a revision expression to a full SHA.
func (g *Gateway) RevParse(ctx context.Context, rev string) (string, error) {
	out, err := g.git(ctx, "rev-parse", "rev-parse", "--verify", rev)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RevListCount counts commits reachable from to but not from from.
func (g *Gateway) RevListCount(ctx context.Context, from, to string) (int, error) {
	out, err := g.git(ctx, "rev-list-count", "rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", strings.TrimSpace(out), err)
	}
	return count, nil
}

// ResetHard hard-resets the working tree to the given revision.
func (g *Gateway) ResetHard(ctx context.Context, rev string) error {
	_, err := g.git(ctx, "reset", "reset", "--hard", rev)
	return err
}

// UndoLastCommit soft-resets HEAD to its parent, keeping the commit's
// changes staged.
func (g *Gateway) UndoLastCommit(ctx context.Context) error {
	_, err := g.git(ctx, "undo-commit", "reset", "--soft", "HEAD~1")
	return err
}

// RestoreStaged unstages everything, leaving changes in the working
// tree.
func (g *Gateway) RestoreStaged(ctx context.Context) error {
	_, err := g.git(ctx, "unstage", "restore", "--staged", ".")
	return err
}

// StageAll stages every change in the working tree.
func (g *Gateway) StageAll(ctx context.Context) error {
	_, err := g.git(ctx, "stage", "add", ".")
	return err
}

// Commit records the staged changes with the given message.
func (g *Gateway) Commit(ctx context.Context, message string) error {
	_, err := g.git(ctx, "commit", "commit", "-m", message)
	return err
}

// CherryPick applies a commit or range. Any nonzero git exit is reported
// as a conflict; the repository is left mid-operation for the user.
func (g *Gateway) CherryPick(ctx context.Context, rev string) error {
	_, err := g.git(ctx, "cherry-pick", "cherry-pick", rev)
	if gitErr := asExitFailure(err); gitErr != nil {
		return &domain.CherryPickConflictError{Range: rev, Output: gitErr.Output}
	}
	return err
}

// CherryPickContinue resumes an in-progress cherry-pick. The editor is
// disabled so resumed picks keep their original messages without
// prompting.
func (g *Gateway) CherryPickContinue(ctx context.Context) error {
	_, err := g.git(ctx, "cherry-pick", "-c", "core.editor=true", "cherry-pick", "--continue")
	if gitErr := asExitFailure(err); gitErr != nil {
		return &domain.CherryPickConflictError{Range: "remaining commits", Output: gitErr.Output}
	}
	return err
}

// CherryPickAbort abandons an in-progress cherry-pick.
func (g *Gateway) CherryPickAbort(ctx context.Context) error {
	_, err := g.git(ctx, "cherry-pick", "cherry-pick", "--abort")
	return err
}

// Checkout switches to an existing branch or revision.
func (g *Gateway) Checkout(ctx context.Context, ref string) error {
	_, err := g.git(ctx, "checkout", "checkout", ref)
	return err
}

// CheckoutNewBranch creates a branch at HEAD and switches to it.
func (g *Gateway) CheckoutNewBranch(ctx context.Context, name string) error {
	_, err := g.git(ctx, "checkout", "checkout", "-b", name)
	return err
}

// CheckoutNewBranchAt creates a branch at the given revision and
// switches to it.
func (g *Gateway) CheckoutNewBranchAt(ctx context.Context, name, rev string) error {
	_, err := g.git(ctx, "checkout", "checkout", "-b", name, rev)
	return err
}

// PushForceWithLease force-pushes a branch guarded by a lease.
func (g *Gateway) PushForceWithLease(ctx context.Context, remote, branch string) error {
	_, err := g.git(ctx, "push", "push", "--force-with-lease", remote, branch)
	return err
}

// Merge merges a ref into the current branch. Any nonzero git exit is
// reported as a conflict.
func (g *Gateway) Merge(ctx context.Context, ref string) error {
	_, err := g.git(ctx, "merge", "merge", "--no-edit", ref)
	if gitErr := asExitFailure(err); gitErr != nil {
		return &domain.MergeConflictError{Ref: ref, Output: gitErr.Output}
	}
	return err
}

// Rebase rebases the current branch onto the given ref. Any nonzero git
// exit is reported as a conflict.
func (g *Gateway) Rebase(ctx context.Context, onto string) error {
	_, err := g.git(ctx, "rebase", "rebase", onto)
	if gitErr := asExitFailure(err); gitErr != nil {
		return &domain.RebaseConflictError{Onto: onto, Output: gitErr.Output}
	}
	return err
}

// LogOneline returns oneline log output for a revision or range, newest
// first.
func (g *Gateway) LogOneline(ctx context.Context, rev string) (string, error) {
	return g.git(ctx, "log", "log", "--oneline", "--no-decorate", rev)
}

// LogOnelineReverse returns oneline log output oldest first.
func (g *Gateway) LogOnelineReverse(ctx context.Context, rev string) (string, error) {
	return g.git(ctx, "log", "log", "--oneline", "--no-decorate", "--reverse", rev)
}
