package prompt

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"

	"github.com/courselab/lessonctl/internal/domain"
)

func TestCancelled(t *testing.T) {
	assert.ErrorIs(t, cancelled(huh.ErrUserAborted), domain.ErrCancelled)

	other := errors.New("terminal broke")
	assert.Equal(t, other, cancelled(other))
}

func TestCommitLabel(t *testing.T) {
	tagged := domain.Commit{ShortHash: "abc1234", Message: "Introduce slices", LessonID: "01.02.03"}
	untagged := domain.Commit{ShortHash: "def5678", Message: "Fix typo"}

	assert.Equal(t, "01.02.03  Introduce slices (abc1234)", commitLabel(tagged))
	assert.Equal(t, "Fix typo (def5678)", commitLabel(untagged))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, notBlank("my-branch"))
	assert.Error(t, notBlank(""))
	assert.Error(t, notBlank("   "))
}
