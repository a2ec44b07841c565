package domain

import (
	"regexp"
	"strings"
)

// CourseTree is the lesson material laid out on disk: numbered section
// directories containing numbered lesson directories, each holding
// exercise variants.
type CourseTree struct {
	// Root is the absolute path the tree was scanned from.
	Root string

	// Sections are ordered ascending by number.
	Sections []Section
}

// Section is one numbered top-level course directory.
type Section struct {
	Number  int
	Name    string
	Dir     string
	Lessons []Lesson
}

// Lesson is one numbered directory inside a section.
type Lesson struct {
	Number    int
	Name      string
	Dir       string
	Exercises []Exercise
}

// Exercise is one variant directory inside a lesson, typically problem,
// solution or explainer.
type Exercise struct {
	// Name is the directory base name.
	Name string

	// Dir is the absolute exercise path.
	Dir string

	// EntryFile is the absolute path of the runnable main file, empty
	// when the exercise has none.
	EntryFile string

	// ReadmePath is the absolute path of the exercise readme, empty when
	// absent.
	ReadmePath string

	// Readme is the readme content.
	Readme string
}

// Lesson finds a section/lesson pair by number, or nil when either is
// missing.
func (t *CourseTree) Lesson(section, lesson int) *Lesson {
	for si := range t.Sections {
		if t.Sections[si].Number != section {
			continue
		}
		for li := range t.Sections[si].Lessons {
			if t.Sections[si].Lessons[li].Number == lesson {
				return &t.Sections[si].Lessons[li]
			}
		}
	}
	return nil
}

// markdownLinkPattern captures the destination of an inline markdown
// link, stopping at whitespace so titles are dropped.
var markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)[^)]*\)`)

// MarkdownFileLinks extracts relative file targets from markdown link
// destinations. External URLs, mail links and in-page anchors are
// skipped; fragments are stripped from what remains.
func MarkdownFileLinks(doc string) []string {
	var targets []string
	for _, m := range markdownLinkPattern.FindAllStringSubmatch(doc, -1) {
		target := m[1]
		if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
			continue
		}
		if strings.HasPrefix(target, "#") {
			continue
		}
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		if target == "" {
			continue
		}
		targets = append(targets, target)
	}
	return targets
}
