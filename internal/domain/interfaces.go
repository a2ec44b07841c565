package domain

import "context"

// GitGateway executes git operations against a single working directory.
// Implementations shell out to the git binary; methods return typed errors
// so callers can branch on conflicts without parsing output.
type GitGateway interface {
	// EnsureRepo verifies a git repository exists at the working
	// directory root, returning ErrNotARepo otherwise.
	EnsureRepo(ctx context.Context) error

	// CurrentBranch returns the checked-out branch name, or an empty
	// string for a detached HEAD.
	CurrentBranch(ctx context.Context) (string, error)

	// UncommittedChanges reports the working tree state via porcelain
	// status.
	UncommittedChanges(ctx context.Context) (WorkTreeStatus, error)

	// DetectUpstreamRemote finds the configured remote pointing at a
	// recognized course organization, returning ErrNoUpstreamRemote when
	// none matches.
	DetectUpstreamRemote(ctx context.Context) (Remote, error)

	// Fetch fetches a single branch from a remote.
	Fetch(ctx context.Context, remote, branch string) error

	// FetchOrigin fetches all branches from origin.
	FetchOrigin(ctx context.Context) error

	// EnsureUpstreamBranch recreates the local tracking branch for the
	// upstream remote's branch: fetch, force-delete any stale local copy,
	// then create it fresh with tracking configured.
	EnsureUpstreamBranch(ctx context.Context, remote, branch string) error

	// RevParse resolves a revision expression to a full SHA.
	RevParse(ctx context.Context, rev string) (string, error)

	// RevListCount counts commits reachable from to but not from from.
	RevListCount(ctx context.Context, from, to string) (int, error)

	// ResetHard hard-resets the working tree to the given revision.
	ResetHard(ctx context.Context, rev string) error

	// UndoLastCommit soft-resets HEAD to its parent, keeping the
	// commit's changes staged.
	UndoLastCommit(ctx context.Context) error

	// RestoreStaged unstages everything, leaving changes in the working
	// tree.
	RestoreStaged(ctx context.Context) error

	// StageAll stages every change in the working tree.
	StageAll(ctx context.Context) error

	// Commit records the staged changes with the given message.
	Commit(ctx context.Context, message string) error

	// CherryPick applies a commit or range, returning
	// *CherryPickConflictError when git exits nonzero.
	CherryPick(ctx context.Context, rev string) error

	// CherryPickContinue resumes a conflicted cherry-pick after the user
	// resolved and staged, returning *CherryPickConflictError when the
	// next pick conflicts too.
	CherryPickContinue(ctx context.Context) error

	// CherryPickAbort abandons an in-progress cherry-pick.
	CherryPickAbort(ctx context.Context) error

	// Checkout switches to an existing branch or revision.
	Checkout(ctx context.Context, ref string) error

	// CheckoutNewBranch creates a branch at HEAD and switches to it.
	CheckoutNewBranch(ctx context.Context, name string) error

	// CheckoutNewBranchAt creates a branch at the given revision and
	// switches to it.
	CheckoutNewBranchAt(ctx context.Context, name, rev string) error

	// PushForceWithLease force-pushes a branch guarded by a lease.
	PushForceWithLease(ctx context.Context, remote, branch string) error

	// Merge merges a ref into the current branch without opening an
	// editor, returning *MergeConflictError when git exits nonzero.
	Merge(ctx context.Context, ref string) error

	// Rebase rebases the current branch onto the given ref, returning
	// *RebaseConflictError when git exits nonzero.
	Rebase(ctx context.Context, onto string) error

	// LogOneline returns oneline log output for a revision or range,
	// newest first.
	LogOneline(ctx context.Context, rev string) (string, error)

	// LogOnelineReverse returns oneline log output oldest first.
	LogOnelineReverse(ctx context.Context, rev string) (string, error)
}

// Prompter asks the user questions on the terminal. Every method returns
// ErrCancelled when the user aborts.
type Prompter interface {
	// Confirm asks a yes/no question with the given default.
	Confirm(ctx context.Context, title string, def bool) (bool, error)

	// Select asks the user to choose one of the given options.
	Select(ctx context.Context, title string, options []string) (string, error)

	// Input asks for a free-form non-blank line of text.
	Input(ctx context.Context, title, placeholder string) (string, error)

	// SelectCommit asks the user to choose a commit, filtering the list
	// as they type.
	SelectCommit(ctx context.Context, title string, commits []Commit) (Commit, error)
}

// UserOutput writes human-facing status lines to the terminal, separate
// from diagnostic logging.
type UserOutput interface {
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ProcessRunner executes external commands.
type ProcessRunner interface {
	// Run executes a command and captures its output. A nonzero exit is
	// reported in the result, not as an error; the error is reserved for
	// failures to start the process at all.
	Run(ctx context.Context, dir, name string, args ...string) (ProcessResult, error)

	// RunInteractive executes a command wired to the caller's terminal.
	RunInteractive(ctx context.Context, dir, name string, args ...string) error
}

// Resolver maps a lesson request to the concrete commit implementing it.
type Resolver interface {
	// Resolve finds the commit for the requested lesson, prompting for a
	// selection when no identifier was supplied. It returns
	// *LessonNotFoundError when the branch has no matching commit.
	Resolve(ctx context.Context, req ResolveRequest) (ResolvedLesson, error)
}

// CourseScanner reads the lesson directory tree from disk.
type CourseScanner interface {
	// Scan walks the lesson root and builds the course tree.
	Scan(root string) (*CourseTree, error)

	// Exists reports whether a path exists on disk.
	Exists(path string) (bool, error)
}

// MarkdownRenderer renders markdown for terminal display.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}
