// Package prompt implements interactive terminal prompts with huh forms.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/courselab/lessonctl/internal/domain"
)

// HuhPrompter implements domain.Prompter using charmbracelet huh forms.
// Aborting any form maps to domain.ErrCancelled.
type HuhPrompter struct{}

// NewHuhPrompter creates a new HuhPrompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

// Confirm asks a yes/no question with the given default.
func (p *HuhPrompter) Confirm(ctx context.Context, title string, def bool) (bool, error) {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&value),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return false, cancelled(err)
	}
	return value, nil
}

// Select asks the user to choose one of the given options.
func (p *HuhPrompter) Select(ctx context.Context, title string, options []string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(&value),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", cancelled(err)
	}
	return value, nil
}

// Input asks for a non-blank line of text.
func (p *HuhPrompter) Input(ctx context.Context, title, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(placeholder).
			Validate(notBlank).
			Value(&value),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(value), nil
}

// SelectCommit asks the user to choose a commit. The list is filterable,
// so typing narrows it down.
func (p *HuhPrompter) SelectCommit(ctx context.Context, title string, commits []domain.Commit) (domain.Commit, error) {
	options := make([]huh.Option[domain.Commit], len(commits))
	for i, c := range commits {
		options[i] = huh.NewOption(commitLabel(c), c)
	}

	var value domain.Commit
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[domain.Commit]().
			Title(title).
			Options(options...).
			Filtering(true).
			Value(&value),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return domain.Commit{}, cancelled(err)
	}
	return value, nil
}

// cancelled maps huh's abort error to the domain cancellation sentinel.
func cancelled(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return domain.ErrCancelled
	}
	return err
}

// commitLabel renders one selectable line for a commit.
func commitLabel(c domain.Commit) string {
	if c.LessonID == "" {
		return fmt.Sprintf("%s (%s)", c.Message, c.ShortHash)
	}
	return fmt.Sprintf("%s  %s (%s)", c.LessonID, c.Message, c.ShortHash)
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value cannot be blank")
	}
	return nil
}
