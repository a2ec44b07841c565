// Package domain defines the core business entities and interfaces for lessonctl.
package domain

// Commit is one parsed line of git oneline log output.
// Commits are constructed fresh on every resolution and never persisted.
type Commit struct {
	// ShortHash is git's abbreviated commit SHA, stable within one invocation.
	ShortHash string

	// Message is the commit subject with any leading lesson identifier
	// and its trailing whitespace removed.
	Message string

	// LessonID is the canonical lesson identifier parsed from the subject.
	// Empty when the commit is not lesson-tagged.
	LessonID string
}

// TaggedMessage returns the subject line with the canonical lesson
// identifier restored in front of the message.
func (c Commit) TaggedMessage() string {
	if c.LessonID == "" {
		return c.Message
	}
	return c.LessonID + " " + c.Message
}

// WorkTreeStatus is the clean/dirty state of the working tree. It is read
// fresh before each mutating operation and never cached across steps.
type WorkTreeStatus struct {
	// Dirty is true when any uncommitted change exists.
	Dirty bool

	// Status is the raw porcelain status text, empty when clean.
	Status string
}

// Remote identifies a configured git remote.
type Remote struct {
	Name string
	URL  string
}

// ProcessResult is the captured outcome of an external command.
type ProcessResult struct {
	// Output is the combined stdout and stderr text.
	Output string

	// ExitCode is the process exit code, zero on success.
	ExitCode int
}

// ResolveRequest describes one lesson-commit resolution.
type ResolveRequest struct {
	// Branch is the branch whose history is searched.
	Branch string

	// LessonID is the user-supplied identifier in any accepted spelling.
	// Empty requests interactive selection.
	LessonID string

	// ExcludeCurrent drops lessons already present on HEAD from the
	// candidate set.
	ExcludeCurrent bool
}

// ResolvedLesson is the single commit a resolution produced.
type ResolvedLesson struct {
	// Commit is the selected commit.
	Commit Commit

	// LessonID is the canonical identifier the match was made on.
	LessonID string
}
