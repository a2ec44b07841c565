// Package usecases contains the application business logic. Each
// workflow orchestrates the git gateway, the prompter and the resolver to
// fulfill one command.
package usecases

import (
	"context"
	"fmt"

	"github.com/courselab/lessonctl/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific
// implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// LessonResolver maps lesson requests to concrete commits on a branch.
// It implements domain.Resolver.
type LessonResolver struct {
	git    domain.GitGateway
	prompt domain.Prompter
	logger Logger
}

// NewLessonResolver creates a new LessonResolver with the given
// dependencies.
func NewLessonResolver(git domain.GitGateway, prompt domain.Prompter, log Logger) *LessonResolver {
	return &LessonResolver{
		git:    git,
		prompt: prompt,
		logger: log,
	}
}

// Resolve finds the commit implementing the requested lesson on the
// request's branch. When the request names no lesson, the user picks one
// from a filterable list sorted by lesson id. When a lesson was committed
// more than once, the most recent occurrence wins.
func (r *LessonResolver) Resolve(ctx context.Context, req domain.ResolveRequest) (domain.ResolvedLesson, error) {
	// Read the branch history oldest first so that the last match for an
	// id is the most recent occurrence.
	out, err := r.git.LogOnelineReverse(ctx, req.Branch)
	if err != nil {
		return domain.ResolvedLesson{}, fmt.Errorf("failed to read history of %s: %w", req.Branch, err)
	}
	commits := domain.ParseOnelineLog(out)

	r.logger.Debug(ctx, "read branch history", map[string]interface{}{
		"branch":  req.Branch,
		"commits": len(commits),
	})

	candidates := domain.LessonTagged(commits)

	if req.ExcludeCurrent {
		headOut, err := r.git.LogOneline(ctx, "HEAD")
		if err != nil {
			return domain.ResolvedLesson{}, fmt.Errorf("failed to read HEAD history: %w", err)
		}
		exclude := domain.LessonIDSet(domain.ParseOnelineLog(headOut))
		candidates = domain.ExcludeLessonIDs(candidates, exclude)

		r.logger.Debug(ctx, "excluded lessons already on HEAD", map[string]interface{}{
			"excluded":  len(exclude),
			"remaining": len(candidates),
		})
	}

	lessonID, err := r.pickLessonID(ctx, req, candidates)
	if err != nil {
		return domain.ResolvedLesson{}, err
	}

	commit, ok := domain.LastWithLessonID(candidates, lessonID)
	if !ok {
		return domain.ResolvedLesson{}, &domain.LessonNotFoundError{LessonID: lessonID, Branch: req.Branch}
	}

	r.logger.Info(ctx, "resolved lesson commit", map[string]interface{}{
		"lesson_id":  lessonID,
		"short_hash": commit.ShortHash,
		"branch":     req.Branch,
	})

	return domain.ResolvedLesson{Commit: commit, LessonID: lessonID}, nil
}

// pickLessonID canonicalizes the requested identifier, or asks the user
// to choose a commit when the request leaves it empty.
func (r *LessonResolver) pickLessonID(ctx context.Context, req domain.ResolveRequest, candidates []domain.Commit) (string, error) {
	if req.LessonID != "" {
		return domain.NormalizeLessonID(req.LessonID), nil
	}

	if len(candidates) == 0 {
		return "", &domain.LessonNotFoundError{LessonID: "any", Branch: req.Branch}
	}

	choice, err := r.prompt.SelectCommit(ctx, "Pick a lesson", domain.SortedByLessonID(candidates))
	if err != nil {
		return "", err
	}
	return choice.LessonID, nil
}
