package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/courselab/lessonctl/internal/domain"
)

// lessonRefPattern matches a section.lesson reference such as "1.2" or
// "1-2".
var lessonRefPattern = regexp.MustCompile(`^(\d+)[.-](\d+)$`)

// RunExerciseRequest holds the options of one run invocation.
type RunExerciseRequest struct {
	// Root is the lesson material directory.
	Root string

	// LessonRef optionally names a section.lesson pair; empty asks
	// interactively.
	LessonRef string
}

// ExerciseRunner picks an exercise from the course tree, shows its
// readme and runs its entry file with the runner configured for the
// file type.
type ExerciseRunner struct {
	scanner     domain.CourseScanner
	prompt      domain.Prompter
	out         domain.UserOutput
	renderer    domain.MarkdownRenderer
	run         domain.ProcessRunner
	entrypoints map[string][]string
	logger      Logger
}

// NewExerciseRunner creates a new ExerciseRunner with the given
// dependencies. entrypoints maps entry file extensions to the command
// that runs them.
func NewExerciseRunner(
	scanner domain.CourseScanner,
	prompt domain.Prompter,
	out domain.UserOutput,
	renderer domain.MarkdownRenderer,
	run domain.ProcessRunner,
	entrypoints map[string][]string,
	log Logger,
) *ExerciseRunner {
	return &ExerciseRunner{
		scanner:     scanner,
		prompt:      prompt,
		out:         out,
		renderer:    renderer,
		run:         run,
		entrypoints: entrypoints,
		logger:      log,
	}
}

// Run executes the run workflow.
func (r *ExerciseRunner) Run(ctx context.Context, req RunExerciseRequest) error {
	tree, err := r.scanner.Scan(req.Root)
	if err != nil {
		return err
	}
	if len(tree.Sections) == 0 {
		return fmt.Errorf("no lesson material found under %s", req.Root)
	}

	lesson, err := r.pickLesson(ctx, tree, req.LessonRef)
	if err != nil {
		return err
	}

	exercise, err := r.pickExercise(ctx, lesson)
	if err != nil {
		return err
	}

	if exercise.Readme != "" {
		r.showReadme(ctx, exercise)
	}

	if exercise.EntryFile == "" {
		r.out.Infof("Nothing to run in %s.", exercise.Dir)
		return nil
	}

	ext := filepath.Ext(exercise.EntryFile)
	argv := r.entrypoints[ext]
	if len(argv) == 0 {
		return fmt.Errorf("%w: no runner configured for %s files", domain.ErrNoEntrypoint, ext)
	}

	args := make([]string, 0, len(argv))
	args = append(args, argv[1:]...)
	args = append(args, filepath.Base(exercise.EntryFile))

	r.logger.Info(ctx, "running exercise", map[string]interface{}{
		"dir":     exercise.Dir,
		"command": argv[0],
	})
	r.out.Infof("Running %s.", filepath.Base(exercise.EntryFile))

	if err := r.run.RunInteractive(ctx, exercise.Dir, argv[0], args...); err != nil {
		return fmt.Errorf("exercise failed: %w", err)
	}
	return nil
}

// pickLesson finds the referenced lesson, or asks for section and lesson
// one after the other.
func (r *ExerciseRunner) pickLesson(ctx context.Context, tree *domain.CourseTree, ref string) (*domain.Lesson, error) {
	if ref != "" {
		m := lessonRefPattern.FindStringSubmatch(ref)
		if m == nil {
			return nil, fmt.Errorf("invalid lesson reference %q, expected section.lesson like 1.2", ref)
		}
		section, _ := strconv.Atoi(m[1])
		number, _ := strconv.Atoi(m[2])
		lesson := tree.Lesson(section, number)
		if lesson == nil {
			return nil, fmt.Errorf("lesson %s not found under %s", ref, tree.Root)
		}
		return lesson, nil
	}

	sectionNames := make([]string, len(tree.Sections))
	for i, s := range tree.Sections {
		sectionNames[i] = s.Name
	}
	sectionName, err := r.prompt.Select(ctx, "Pick a section", sectionNames)
	if err != nil {
		return nil, err
	}

	var section *domain.Section
	for i := range tree.Sections {
		if tree.Sections[i].Name == sectionName {
			section = &tree.Sections[i]
			break
		}
	}
	if section == nil || len(section.Lessons) == 0 {
		return nil, fmt.Errorf("section %s has no lessons", sectionName)
	}

	lessonNames := make([]string, len(section.Lessons))
	for i, l := range section.Lessons {
		lessonNames[i] = l.Name
	}
	lessonName, err := r.prompt.Select(ctx, "Pick a lesson", lessonNames)
	if err != nil {
		return nil, err
	}

	for i := range section.Lessons {
		if section.Lessons[i].Name == lessonName {
			return &section.Lessons[i], nil
		}
	}
	return nil, fmt.Errorf("lesson %s not found in section %s", lessonName, sectionName)
}

// pickExercise returns the lesson's only exercise, or asks which variant
// to use.
func (r *ExerciseRunner) pickExercise(ctx context.Context, lesson *domain.Lesson) (*domain.Exercise, error) {
	switch len(lesson.Exercises) {
	case 0:
		return nil, fmt.Errorf("lesson %s has no exercises", lesson.Name)
	case 1:
		return &lesson.Exercises[0], nil
	}

	names := make([]string, len(lesson.Exercises))
	for i, e := range lesson.Exercises {
		names[i] = e.Name
	}
	name, err := r.prompt.Select(ctx, "Pick an exercise", names)
	if err != nil {
		return nil, err
	}

	for i := range lesson.Exercises {
		if lesson.Exercises[i].Name == name {
			return &lesson.Exercises[i], nil
		}
	}
	return nil, fmt.Errorf("exercise %s not found in lesson %s", name, lesson.Name)
}

// showReadme prints the exercise readme, rendered when possible and raw
// otherwise.
func (r *ExerciseRunner) showReadme(ctx context.Context, exercise *domain.Exercise) {
	text := exercise.Readme
	if rendered, err := r.renderer.Render(text); err == nil {
		text = rendered
	} else {
		r.logger.Warn(ctx, "markdown rendering failed, printing raw", map[string]interface{}{
			"readme": exercise.ReadmePath,
		})
	}
	r.out.Infof("%s", text)
}
