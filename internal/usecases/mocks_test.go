package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/courselab/lessonctl/internal/domain"
)

// mockLogger implements the Logger interface for testing.
type mockLogger struct{}

func (m *mockLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (m *mockLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}

// mockGitGateway implements domain.GitGateway for testing. Every call is
// recorded as "Op arg arg"; a nil func field means the operation
// succeeds with zero values.
type mockGitGateway struct {
	calls []string

	ensureRepoFn           func() error
	currentBranchFn        func() (string, error)
	uncommittedChangesFn   func() (domain.WorkTreeStatus, error)
	detectUpstreamRemoteFn func() (domain.Remote, error)
	fetchFn                func(remote, branch string) error
	fetchOriginFn          func() error
	ensureUpstreamBranchFn func(remote, branch string) error
	revParseFn             func(rev string) (string, error)
	revListCountFn         func(from, to string) (int, error)
	resetHardFn            func(rev string) error
	undoLastCommitFn       func() error
	restoreStagedFn        func() error
	stageAllFn             func() error
	commitFn               func(message string) error
	cherryPickFn           func(rev string) error
	cherryPickContinueFn   func() error
	cherryPickAbortFn      func() error
	checkoutFn             func(ref string) error
	checkoutNewBranchFn    func(name string) error
	checkoutNewBranchAtFn  func(name, rev string) error
	pushForceWithLeaseFn   func(remote, branch string) error
	mergeFn                func(ref string) error
	rebaseFn               func(onto string) error
	logOnelineFn           func(rev string) (string, error)
	logOnelineReverseFn    func(rev string) (string, error)
}

func (m *mockGitGateway) record(parts ...string) {
	m.calls = append(m.calls, strings.Join(parts, " "))
}

// called reports whether any recorded call invoked the named operation.
func (m *mockGitGateway) called(op string) bool {
	for _, c := range m.calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			return true
		}
	}
	return false
}

func (m *mockGitGateway) EnsureRepo(_ context.Context) error {
	m.record("EnsureRepo")
	if m.ensureRepoFn != nil {
		return m.ensureRepoFn()
	}
	return nil
}

func (m *mockGitGateway) CurrentBranch(_ context.Context) (string, error) {
	m.record("CurrentBranch")
	if m.currentBranchFn != nil {
		return m.currentBranchFn()
	}
	return "", nil
}

func (m *mockGitGateway) UncommittedChanges(_ context.Context) (domain.WorkTreeStatus, error) {
	m.record("UncommittedChanges")
	if m.uncommittedChangesFn != nil {
		return m.uncommittedChangesFn()
	}
	return domain.WorkTreeStatus{}, nil
}

func (m *mockGitGateway) DetectUpstreamRemote(_ context.Context) (domain.Remote, error) {
	m.record("DetectUpstreamRemote")
	if m.detectUpstreamRemoteFn != nil {
		return m.detectUpstreamRemoteFn()
	}
	return domain.Remote{Name: "upstream"}, nil
}

func (m *mockGitGateway) Fetch(_ context.Context, remote, branch string) error {
	m.record("Fetch", remote, branch)
	if m.fetchFn != nil {
		return m.fetchFn(remote, branch)
	}
	return nil
}

func (m *mockGitGateway) FetchOrigin(_ context.Context) error {
	m.record("FetchOrigin")
	if m.fetchOriginFn != nil {
		return m.fetchOriginFn()
	}
	return nil
}

func (m *mockGitGateway) EnsureUpstreamBranch(_ context.Context, remote, branch string) error {
	m.record("EnsureUpstreamBranch", remote, branch)
	if m.ensureUpstreamBranchFn != nil {
		return m.ensureUpstreamBranchFn(remote, branch)
	}
	return nil
}

func (m *mockGitGateway) RevParse(_ context.Context, rev string) (string, error) {
	m.record("RevParse", rev)
	if m.revParseFn != nil {
		return m.revParseFn(rev)
	}
	return "", nil
}

func (m *mockGitGateway) RevListCount(_ context.Context, from, to string) (int, error) {
	m.record("RevListCount", from, to)
	if m.revListCountFn != nil {
		return m.revListCountFn(from, to)
	}
	return 0, nil
}

func (m *mockGitGateway) ResetHard(_ context.Context, rev string) error {
	m.record("ResetHard", rev)
	if m.resetHardFn != nil {
		return m.resetHardFn(rev)
	}
	return nil
}

func (m *mockGitGateway) UndoLastCommit(_ context.Context) error {
	m.record("UndoLastCommit")
	if m.undoLastCommitFn != nil {
		return m.undoLastCommitFn()
	}
	return nil
}

func (m *mockGitGateway) RestoreStaged(_ context.Context) error {
	m.record("RestoreStaged")
	if m.restoreStagedFn != nil {
		return m.restoreStagedFn()
	}
	return nil
}

func (m *mockGitGateway) StageAll(_ context.Context) error {
	m.record("StageAll")
	if m.stageAllFn != nil {
		return m.stageAllFn()
	}
	return nil
}

func (m *mockGitGateway) Commit(_ context.Context, message string) error {
	m.record("Commit", message)
	if m.commitFn != nil {
		return m.commitFn(message)
	}
	return nil
}

func (m *mockGitGateway) CherryPick(_ context.Context, rev string) error {
	m.record("CherryPick", rev)
	if m.cherryPickFn != nil {
		return m.cherryPickFn(rev)
	}
	return nil
}

func (m *mockGitGateway) CherryPickContinue(_ context.Context) error {
	m.record("CherryPickContinue")
	if m.cherryPickContinueFn != nil {
		return m.cherryPickContinueFn()
	}
	return nil
}

func (m *mockGitGateway) CherryPickAbort(_ context.Context) error {
	m.record("CherryPickAbort")
	if m.cherryPickAbortFn != nil {
		return m.cherryPickAbortFn()
	}
	return nil
}

func (m *mockGitGateway) Checkout(_ context.Context, ref string) error {
	m.record("Checkout", ref)
	if m.checkoutFn != nil {
		return m.checkoutFn(ref)
	}
	return nil
}

func (m *mockGitGateway) CheckoutNewBranch(_ context.Context, name string) error {
	m.record("CheckoutNewBranch", name)
	if m.checkoutNewBranchFn != nil {
		return m.checkoutNewBranchFn(name)
	}
	return nil
}

func (m *mockGitGateway) CheckoutNewBranchAt(_ context.Context, name, rev string) error {
	m.record("CheckoutNewBranchAt", name, rev)
	if m.checkoutNewBranchAtFn != nil {
		return m.checkoutNewBranchAtFn(name, rev)
	}
	return nil
}

func (m *mockGitGateway) PushForceWithLease(_ context.Context, remote, branch string) error {
	m.record("PushForceWithLease", remote, branch)
	if m.pushForceWithLeaseFn != nil {
		return m.pushForceWithLeaseFn(remote, branch)
	}
	return nil
}

func (m *mockGitGateway) Merge(_ context.Context, ref string) error {
	m.record("Merge", ref)
	if m.mergeFn != nil {
		return m.mergeFn(ref)
	}
	return nil
}

func (m *mockGitGateway) Rebase(_ context.Context, onto string) error {
	m.record("Rebase", onto)
	if m.rebaseFn != nil {
		return m.rebaseFn(onto)
	}
	return nil
}

func (m *mockGitGateway) LogOneline(_ context.Context, rev string) (string, error) {
	m.record("LogOneline", rev)
	if m.logOnelineFn != nil {
		return m.logOnelineFn(rev)
	}
	return "", nil
}

func (m *mockGitGateway) LogOnelineReverse(_ context.Context, rev string) (string, error) {
	m.record("LogOnelineReverse", rev)
	if m.logOnelineReverseFn != nil {
		return m.logOnelineReverseFn(rev)
	}
	return "", nil
}

// mockPrompter implements domain.Prompter for testing. Answers are
// consumed in call order per method; an unscripted call fails so tests
// catch prompts that should never appear.
type mockPrompter struct {
	confirmAnswers []confirmAnswer
	confirmTitles  []string

	selectAnswers []selectAnswer
	selectTitles  []string
	selectOptions [][]string

	inputAnswers []inputAnswer
	inputTitles  []string

	commitAnswers []commitAnswer
	commitTitles  []string
	commitLists   [][]domain.Commit
}

type confirmAnswer struct {
	ok  bool
	err error
}

type selectAnswer struct {
	choice string
	err    error
}

type inputAnswer struct {
	text string
	err  error
}

type commitAnswer struct {
	commit domain.Commit
	err    error
}

func (m *mockPrompter) Confirm(_ context.Context, title string, _ bool) (bool, error) {
	m.confirmTitles = append(m.confirmTitles, title)
	if len(m.confirmAnswers) == 0 {
		return false, fmt.Errorf("unscripted Confirm: %s", title)
	}
	a := m.confirmAnswers[0]
	m.confirmAnswers = m.confirmAnswers[1:]
	return a.ok, a.err
}

func (m *mockPrompter) Select(_ context.Context, title string, options []string) (string, error) {
	m.selectTitles = append(m.selectTitles, title)
	m.selectOptions = append(m.selectOptions, options)
	if len(m.selectAnswers) == 0 {
		return "", fmt.Errorf("unscripted Select: %s", title)
	}
	a := m.selectAnswers[0]
	m.selectAnswers = m.selectAnswers[1:]
	return a.choice, a.err
}

func (m *mockPrompter) Input(_ context.Context, title, _ string) (string, error) {
	m.inputTitles = append(m.inputTitles, title)
	if len(m.inputAnswers) == 0 {
		return "", fmt.Errorf("unscripted Input: %s", title)
	}
	a := m.inputAnswers[0]
	m.inputAnswers = m.inputAnswers[1:]
	return a.text, a.err
}

func (m *mockPrompter) SelectCommit(_ context.Context, title string, commits []domain.Commit) (domain.Commit, error) {
	m.commitTitles = append(m.commitTitles, title)
	m.commitLists = append(m.commitLists, commits)
	if len(m.commitAnswers) == 0 {
		return domain.Commit{}, fmt.Errorf("unscripted SelectCommit: %s", title)
	}
	a := m.commitAnswers[0]
	m.commitAnswers = m.commitAnswers[1:]
	return a.commit, a.err
}

// mockResolver implements domain.Resolver for testing.
type mockResolver struct {
	resolved domain.ResolvedLesson
	err      error
	requests []domain.ResolveRequest
}

func (m *mockResolver) Resolve(_ context.Context, req domain.ResolveRequest) (domain.ResolvedLesson, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return domain.ResolvedLesson{}, m.err
	}
	return m.resolved, nil
}

// mockOutput implements domain.UserOutput for testing, recording
// formatted lines per level.
type mockOutput struct {
	infos     []string
	successes []string
	warns     []string
	errors    []string
}

func (m *mockOutput) Infof(format string, args ...interface{}) {
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *mockOutput) Successf(format string, args ...interface{}) {
	m.successes = append(m.successes, fmt.Sprintf(format, args...))
}

func (m *mockOutput) Warnf(format string, args ...interface{}) {
	m.warns = append(m.warns, fmt.Sprintf(format, args...))
}

func (m *mockOutput) Errorf(format string, args ...interface{}) {
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}

// mockScanner implements domain.CourseScanner for testing.
type mockScanner struct {
	tree      *domain.CourseTree
	scanErr   error
	scanRoots []string
	exists    map[string]bool
	existsErr error
}

func (m *mockScanner) Scan(root string) (*domain.CourseTree, error) {
	m.scanRoots = append(m.scanRoots, root)
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.tree, nil
}

func (m *mockScanner) Exists(path string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists[path], nil
}

// mockRenderer implements domain.MarkdownRenderer for testing.
type mockRenderer struct {
	rendered string
	err      error
	calls    int
}

func (m *mockRenderer) Render(_ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.rendered, nil
}

// mockProcessRunner implements domain.ProcessRunner for testing.
type mockProcessRunner struct {
	result domain.ProcessResult
	runErr error

	interactiveErr   error
	interactiveCalls []interactiveCall
}

type interactiveCall struct {
	dir  string
	name string
	args []string
}

func (m *mockProcessRunner) Run(_ context.Context, _, _ string, _ ...string) (domain.ProcessResult, error) {
	if m.runErr != nil {
		return domain.ProcessResult{}, m.runErr
	}
	return m.result, nil
}

func (m *mockProcessRunner) RunInteractive(_ context.Context, dir, name string, args ...string) error {
	m.interactiveCalls = append(m.interactiveCalls, interactiveCall{dir: dir, name: name, args: args})
	return m.interactiveErr
}
