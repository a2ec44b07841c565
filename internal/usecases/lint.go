package usecases

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/courselab/lessonctl/internal/domain"
)

// Linter checks every exercise readme for file links whose targets do
// not exist on disk.
type Linter struct {
	scanner domain.CourseScanner
	out     domain.UserOutput
	logger  Logger
}

// NewLinter creates a new Linter with the given dependencies.
func NewLinter(scanner domain.CourseScanner, out domain.UserOutput, log Logger) *Linter {
	return &Linter{scanner: scanner, out: out, logger: log}
}

// Run scans the course tree under root and reports broken readme links.
func (l *Linter) Run(ctx context.Context, root string) error {
	tree, err := l.scanner.Scan(root)
	if err != nil {
		return err
	}

	var broken []domain.BrokenLink
	checked := 0
	for _, section := range tree.Sections {
		for _, lesson := range section.Lessons {
			for _, exercise := range lesson.Exercises {
				if exercise.ReadmePath == "" {
					continue
				}
				checked++
				for _, target := range domain.MarkdownFileLinks(exercise.Readme) {
					resolved := filepath.Join(exercise.Dir, target)
					exists, err := l.scanner.Exists(resolved)
					if err != nil {
						return fmt.Errorf("checking %s: %w", resolved, err)
					}
					if !exists {
						broken = append(broken, domain.BrokenLink{
							Readme: exercise.ReadmePath,
							Target: target,
						})
					}
				}
			}
		}
	}

	l.logger.Debug(ctx, "readme link check done", map[string]interface{}{
		"readmes": checked,
		"broken":  len(broken),
	})

	if len(broken) == 0 {
		l.out.Successf("All readme links resolve (%d readmes checked).", checked)
		return nil
	}

	for _, link := range broken {
		l.out.Errorf("%s links to missing file %s", link.Readme, link.Target)
	}
	return fmt.Errorf("%w: %d broken links in %d readmes", domain.ErrBrokenLinks, len(broken), checked)
}
