package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courselab/lessonctl/internal/domain"
)

// resolvedLesson is the lesson every reset test resolves to.
func resolvedLesson() domain.ResolvedLesson {
	return domain.ResolvedLesson{
		Commit:   domain.Commit{ShortHash: "abc1234", Message: "Wire the handler", LessonID: "01.02.02"},
		LessonID: "01.02.02",
	}
}

func newResetWorkflow(git *mockGitGateway, prompt *mockPrompter, out *mockOutput) *ResetWorkflow {
	resolver := &mockResolver{resolved: resolvedLesson()}
	return NewResetWorkflow(git, resolver, prompt, out, "main", &mockLogger{})
}

func TestResetWorkflow_Run_FlagConflicts(t *testing.T) {
	tests := []struct {
		name       string
		req        ResetRequest
		wantErrMsg string
	}{
		{
			name:       "problem with solution",
			req:        ResetRequest{Branch: "lessons", Problem: true, Solution: true},
			wantErrMsg: "--problem and --solution",
		},
		{
			name:       "demo with problem",
			req:        ResetRequest{Branch: "lessons", Demo: true, Problem: true},
			wantErrMsg: "--demo with --problem or --solution",
		},
		{
			name:       "demo with solution",
			req:        ResetRequest{Branch: "lessons", Demo: true, Solution: true},
			wantErrMsg: "--demo with --problem or --solution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			git := &mockGitGateway{}
			workflow := newResetWorkflow(git, &mockPrompter{}, &mockOutput{})

			// Act
			err := workflow.Run(context.Background(), tt.req)

			// Assert
			require.ErrorIs(t, err, domain.ErrOptionConflict)
			assert.Contains(t, err.Error(), tt.wantErrMsg)

			// Validation happens before any git invocation.
			assert.Empty(t, git.calls)
		})
	}
}

func TestResetWorkflow_Run_DemoUnpacksSolutionWithoutPrompts(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn: func(rev string) (string, error) {
			require.Equal(t, "abc1234", rev)
			return "solutionsha", nil
		},
	}
	prompt := &mockPrompter{} // any prompt call fails the workflow
	out := &mockOutput{}
	workflow := newResetWorkflow(git, prompt, out)

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", LessonID: "1.2.2", Demo: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"EnsureRepo",
		"DetectUpstreamRemote",
		"EnsureUpstreamBranch upstream lessons",
		"RevParse abc1234",
		"CurrentBranch",
		"ResetHard solutionsha",
		"UndoLastCommit",
		"RestoreStaged",
	}, git.calls)

	assert.Empty(t, prompt.confirmTitles)
	assert.Empty(t, prompt.selectTitles)
	require.Len(t, out.successes, 1)
	assert.Equal(t, "Lesson 01.02.02 is unpacked on work; its changes are unstaged.", out.successes[0])
}

func TestResetWorkflow_Run_ProblemTargetsParentCommit(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn: func(rev string) (string, error) {
			if rev == "abc1234^" {
				return "parentsha", nil
			}
			return "", fmt.Errorf("unexpected rev %q", rev)
		},
	}
	prompt := &mockPrompter{
		selectAnswers: []selectAnswer{{choice: "reset this branch"}},
	}
	out := &mockOutput{}
	workflow := newResetWorkflow(git, prompt, out)

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Problem: true})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "RevParse abc1234^")
	assert.Contains(t, git.calls, "ResetHard parentsha")
	assert.False(t, git.called("UndoLastCommit"))
	require.Len(t, out.successes, 1)
	assert.Equal(t, "Branch work now points at the problem of lesson 01.02.02.", out.successes[0])
}

func TestResetWorkflow_Run_ProblemWithoutParent(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn: func(rev string) (string, error) {
			return "", errors.New("fatal: bad revision")
		},
	}
	workflow := newResetWorkflow(git, &mockPrompter{}, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Problem: true})

	// Assert
	require.ErrorIs(t, err, domain.ErrNoParentCommit)
	assert.Contains(t, err.Error(), "lesson 01.02.02")
	assert.False(t, git.called("ResetHard"))
}

func TestResetWorkflow_Run_InteractiveStateChoice(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
	}
	prompt := &mockPrompter{
		selectAnswers: []selectAnswer{
			{choice: "solution"},
			{choice: "reset this branch"},
		},
	}
	workflow := newResetWorkflow(git, prompt, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons"})

	// Assert
	require.NoError(t, err)
	require.Len(t, prompt.selectTitles, 2)
	assert.Equal(t, "Reset to the problem or the solution of lesson 01.02.02?", prompt.selectTitles[0])
	assert.Equal(t, []string{"problem", "solution"}, prompt.selectOptions[0])
	assert.Equal(t, "Apply the lesson how?", prompt.selectTitles[1])
	assert.Contains(t, git.calls, "ResetHard solutionsha")
}

func TestResetWorkflow_Run_OnMainCreatesBranch(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "main", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
	}
	prompt := &mockPrompter{
		inputAnswers: []inputAnswer{{text: "my-fix"}},
	}
	out := &mockOutput{}
	workflow := newResetWorkflow(git, prompt, out)

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Solution: true})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "CheckoutNewBranchAt my-fix solutionsha")
	assert.False(t, git.called("ResetHard"))
	assert.Empty(t, prompt.selectTitles)
	assert.Contains(t, out.infos, "You are on main, so a new branch will be created.")
	require.Len(t, out.successes, 1)
	assert.Equal(t, "Created branch my-fix at the solution of lesson 01.02.02.", out.successes[0])
}

func TestResetWorkflow_Run_DemoOnMainStillCreatesBranch(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "main", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
	}
	prompt := &mockPrompter{
		inputAnswers: []inputAnswer{{text: "demo-branch"}},
	}
	workflow := newResetWorkflow(git, prompt, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Demo: true})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "CheckoutNewBranchAt demo-branch solutionsha")
	assert.False(t, git.called("ResetHard"))
	assert.False(t, git.called("UndoLastCommit"))
}

func TestResetWorkflow_Run_ResetOntoLessonBranchRefused(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "lessons", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
	}
	prompt := &mockPrompter{
		selectAnswers: []selectAnswer{{choice: "reset this branch"}},
	}
	workflow := newResetWorkflow(git, prompt, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Solution: true})

	// Assert
	require.ErrorIs(t, err, domain.ErrSameBranch)
	assert.False(t, git.called("ResetHard"))
}

func TestResetWorkflow_Run_DirtyTreeDeclineCancels(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
		uncommittedChangesFn: func() (domain.WorkTreeStatus, error) {
			return domain.WorkTreeStatus{Dirty: true, Status: " M main.go"}, nil
		},
	}
	prompt := &mockPrompter{
		selectAnswers:  []selectAnswer{{choice: "reset this branch"}},
		confirmAnswers: []confirmAnswer{{ok: false}},
	}
	out := &mockOutput{}
	workflow := newResetWorkflow(git, prompt, out)

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Solution: true})

	// Assert
	require.ErrorIs(t, err, domain.ErrCancelled)
	assert.False(t, git.called("ResetHard"))
	require.Len(t, prompt.confirmTitles, 1)
	assert.Equal(t, "Discard these changes and reset?", prompt.confirmTitles[0])
	require.Len(t, out.warns, 1)
	assert.Contains(t, out.warns[0], " M main.go")
}

func TestResetWorkflow_Run_DirtyTreeConfirmedResets(t *testing.T) {
	// Arrange
	git := &mockGitGateway{
		currentBranchFn: func() (string, error) { return "work", nil },
		revParseFn:      func(string) (string, error) { return "solutionsha", nil },
		uncommittedChangesFn: func() (domain.WorkTreeStatus, error) {
			return domain.WorkTreeStatus{Dirty: true, Status: "?? scratch.go"}, nil
		},
	}
	prompt := &mockPrompter{
		selectAnswers:  []selectAnswer{{choice: "reset this branch"}},
		confirmAnswers: []confirmAnswer{{ok: true}},
	}
	workflow := newResetWorkflow(git, prompt, &mockOutput{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Solution: true})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, git.calls, "ResetHard solutionsha")
}

func TestResetWorkflow_Run_ResolverErrorPropagates(t *testing.T) {
	// Arrange
	git := &mockGitGateway{}
	resolver := &mockResolver{err: &domain.LessonNotFoundError{LessonID: "01.09.09", Branch: "lessons"}}
	workflow := NewResetWorkflow(git, resolver, &mockPrompter{}, &mockOutput{}, "main", &mockLogger{})

	// Act
	err := workflow.Run(context.Background(), ResetRequest{Branch: "lessons", Solution: true})

	// Assert
	var notFound *domain.LessonNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{
		"EnsureRepo",
		"DetectUpstreamRemote",
		"EnsureUpstreamBranch upstream lessons",
	}, git.calls)
}
