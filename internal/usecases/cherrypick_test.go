package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courselab/lessonctl/internal/domain"
)

func newCherryPickWorkflow(git *mockGitGateway, resolver *mockResolver, prompt *mockPrompter, out *mockOutput) *CherryPickWorkflow {
	return NewCherryPickWorkflow(git, resolver, prompt, out, "main", &mockLogger{})
}

func TestCherryPickWorkflow_Run_AppliesLessonToCurrentBranch(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
	}
	resolver := &mockResolver{resolved: domain.ResolvedLesson{
		Commit:   domain.Commit{ShortHash: "eee5555", Message: "Add feature", LessonID: "01.02.03"},
		LessonID: "01.02.03",
	}}
	out := &mockOutput{}
	workflow := newCherryPickWorkflow(git, resolver, &mockPrompter{}, out)

	// Act
	err := workflow.Run(context.Background(), CherryPickRequest{Branch: "lessons", LessonID: "1.2.3"})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "EnsureUpstreamBranch upstream lessons")
	assert.Contains(t, git.calls, "CherryPick eee5555")
	require.Len(t, out.successes, 1)
	assert.Equal(t, "Lesson 01.02.03 cherry-picked onto work.", out.successes[0])

	// Lessons already applied here must not be offered again.
	require.Len(t, resolver.requests, 1)
	assert.True(t, resolver.requests[0].ExcludeCurrent)
}

func TestCherryPickWorkflow_Run_RefusesLessonBranch(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "lessons", nil },
	}
	resolver := &mockResolver{resolved: domain.ResolvedLesson{
		Commit:   domain.Commit{ShortHash: "eee5555", LessonID: "01.02.03"},
		LessonID: "01.02.03",
	}}
	workflow := newCherryPickWorkflow(git, resolver, &mockPrompter{}, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), CherryPickRequest{Branch: "lessons"})

	// Assert
	require.ErrorIs(t, err, domain.ErrSameBranch)
	assert.False(t, git.called("CherryPick"))
}

func TestCherryPickWorkflow_Run_OnMainBranchesOffFirst(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "main", nil },
	}
	resolver := &mockResolver{resolved: domain.ResolvedLesson{
		Commit:   domain.Commit{ShortHash: "eee5555", Message: "Add feature", LessonID: "01.02.03"},
		LessonID: "01.02.03",
	}}
	prompt := &mockPrompter{
		inputAnswers: []inputAnswer{{text: "mine"}},
	}
	out := &mockOutput{}
	workflow := newCherryPickWorkflow(git, resolver, prompt, out)

	// Act
	err := workflow.Run(context.Background(), CherryPickRequest{Branch: "lessons"})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "CheckoutNewBranch mine")
	assert.Contains(t, git.calls, "CherryPick eee5555")
	assert.Contains(t, out.infos, "Created branch mine off main.")
	require.Len(t, out.successes, 1)
	assert.Equal(t, "Lesson 01.02.03 cherry-picked onto mine.", out.successes[0])
}

func TestCherryPickWorkflow_Run_ConflictReportsAndReturns(t *testing.T) {
	// Arrange
	conflict := &domain.CherryPickConflictError{Range: "eee5555", Output: "CONFLICT (content): notes.txt"}
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		cherryPickFn:    func(string) error { return conflict },
	}
	resolver := &mockResolver{resolved: domain.ResolvedLesson{
		Commit:   domain.Commit{ShortHash: "eee5555", LessonID: "01.02.03"},
		LessonID: "01.02.03",
	}}
	out := &mockOutput{}
	workflow := newCherryPickWorkflow(git, resolver, &mockPrompter{}, out)

	// Act
	err := workflow.Run(context.Background(), CherryPickRequest{Branch: "lessons"})

	// Assert
	var got *domain.CherryPickConflictError
	require.ErrorAs(t, err, &got)
	require.Len(t, out.warns, 1)
	assert.Equal(t, "Cherry-pick of lesson 01.02.03 hit conflicts.", out.warns[0])
	assert.Contains(t, out.infos, "Resolve the conflicts and run 'git cherry-pick --continue' (or 'git cherry-pick --abort').")
	assert.Empty(t, out.successes)
}

func TestCherryPickWorkflow_Run_NothingLeftToPick(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
	}
	resolver := &mockResolver{err: &domain.LessonNotFoundError{LessonID: "any", Branch: "lessons"}}
	workflow := newCherryPickWorkflow(git, resolver, &mockPrompter{}, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), CherryPickRequest{Branch: "lessons"})

	// Assert
	var notFound *domain.LessonNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.False(t, git.called("CherryPick"))
}
