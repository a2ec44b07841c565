// Package course scans the lesson material tree from disk.
package course

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/courselab/lessonctl/internal/domain"
)

// numberedDirPattern matches directories like "01-intro", "2_types" or a
// bare "03".
var numberedDirPattern = regexp.MustCompile(`^(\d+)(?:[-_. ].*)?$`)

// exerciseRank orders exercise variants for display: the problem comes
// first, unknown names last.
var exerciseRank = map[string]int{
	"problem":   0,
	"solution":  1,
	"explainer": 2,
}

// Scanner builds the course tree from a filesystem. It implements
// domain.CourseScanner.
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a Scanner over the given filesystem.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan walks the lesson root and builds the course tree. Directories
// without a leading number are ignored.
func (s *Scanner) Scan(root string) (*domain.CourseTree, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson root %s: %w", root, err)
	}

	tree := &domain.CourseTree{Root: root}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		number, ok := dirNumber(entry.Name())
		if !ok {
			continue
		}

		section := domain.Section{
			Number: number,
			Name:   entry.Name(),
			Dir:    filepath.Join(root, entry.Name()),
		}
		if err := s.scanLessons(&section); err != nil {
			return nil, err
		}
		tree.Sections = append(tree.Sections, section)
	}

	sort.Slice(tree.Sections, func(i, j int) bool {
		return tree.Sections[i].Number < tree.Sections[j].Number
	})
	return tree, nil
}

// Exists reports whether a path exists on the filesystem.
func (s *Scanner) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

func (s *Scanner) scanLessons(section *domain.Section) error {
	entries, err := afero.ReadDir(s.fs, section.Dir)
	if err != nil {
		return fmt.Errorf("failed to read section %s: %w", section.Dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		number, ok := dirNumber(entry.Name())
		if !ok {
			continue
		}

		lesson := domain.Lesson{
			Number: number,
			Name:   entry.Name(),
			Dir:    filepath.Join(section.Dir, entry.Name()),
		}
		if err := s.scanExercises(&lesson); err != nil {
			return err
		}
		section.Lessons = append(section.Lessons, lesson)
	}

	sort.Slice(section.Lessons, func(i, j int) bool {
		return section.Lessons[i].Number < section.Lessons[j].Number
	})
	return nil
}

func (s *Scanner) scanExercises(lesson *domain.Lesson) error {
	entries, err := afero.ReadDir(s.fs, lesson.Dir)
	if err != nil {
		return fmt.Errorf("failed to read lesson %s: %w", lesson.Dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		exercise := domain.Exercise{
			Name: entry.Name(),
			Dir:  filepath.Join(lesson.Dir, entry.Name()),
		}
		if err := s.fillExercise(&exercise); err != nil {
			return err
		}
		lesson.Exercises = append(lesson.Exercises, exercise)
	}

	sort.Slice(lesson.Exercises, func(i, j int) bool {
		ri, rj := rankOf(lesson.Exercises[i].Name), rankOf(lesson.Exercises[j].Name)
		if ri != rj {
			return ri < rj
		}
		return lesson.Exercises[i].Name < lesson.Exercises[j].Name
	})
	return nil
}

// fillExercise locates the entry file and readme inside an exercise
// directory. The entry file is any file whose stem is "main".
func (s *Scanner) fillExercise(exercise *domain.Exercise) error {
	entries, err := afero.ReadDir(s.fs, exercise.Dir)
	if err != nil {
		return fmt.Errorf("failed to read exercise %s: %w", exercise.Dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(exercise.Dir, name)

		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if ext != "" && strings.EqualFold(stem, "main") {
			exercise.EntryFile = path
			continue
		}

		if strings.EqualFold(name, "readme.md") {
			content, err := afero.ReadFile(s.fs, path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			exercise.ReadmePath = path
			exercise.Readme = string(content)
		}
	}
	return nil
}

func rankOf(name string) int {
	if rank, ok := exerciseRank[strings.ToLower(name)]; ok {
		return rank
	}
	return len(exerciseRank)
}

func dirNumber(name string) (int, bool) {
	m := numberedDirPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return number, true
}
