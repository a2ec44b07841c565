package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// lessonIDPattern matches a full lesson identifier such as "1.2.3",
// "01.02.03" or "1-2-3". Segments may use dots or dashes in any mix.
var lessonIDPattern = regexp.MustCompile(`^(\d+)[.-](\d+)[.-](\d+)$`)

// messageTagPattern matches a lesson identifier at the start of a commit
// subject, including the whitespace separating it from the message.
var messageTagPattern = regexp.MustCompile(`^(\d+)[.-](\d+)[.-](\d+)\s*`)

// NormalizeLessonID canonicalizes a lesson identifier to zero-padded,
// dot-separated form: "1.1.1", "01.1.01" and "1-1-1" all become
// "01.01.01". Input that is not a lesson identifier is returned verbatim
// so callers can still report what the user typed.
func NormalizeLessonID(id string) string {
	m := lessonIDPattern.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return id
	}
	return canonicalID(m[1], m[2], m[3])
}

func canonicalID(segments ...string) string {
	padded := make([]string, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil {
			padded[i] = seg
			continue
		}
		padded[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(padded, ".")
}

// ParseOnelineCommit parses a single "git log --oneline" line into a
// Commit. The second return is false when the line is blank.
func ParseOnelineCommit(line string) (Commit, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Commit{}, false
	}

	parts := strings.SplitN(trimmed, " ", 2)
	commit := Commit{ShortHash: parts[0]}
	if len(parts) < 2 {
		return commit, true
	}

	subject := parts[1]
	if m := messageTagPattern.FindStringSubmatch(subject); m != nil {
		commit.LessonID = canonicalID(m[1], m[2], m[3])
		subject = subject[len(m[0]):]
	}
	commit.Message = subject
	return commit, true
}

// ParseOnelineLog parses full oneline log output, skipping blank lines and
// preserving the order git printed.
func ParseOnelineLog(output string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(output, "\n") {
		commit, ok := ParseOnelineCommit(line)
		if !ok {
			continue
		}
		commits = append(commits, commit)
	}
	return commits
}

// LessonTagged returns only the commits carrying a lesson identifier,
// preserving input order.
func LessonTagged(commits []Commit) []Commit {
	var tagged []Commit
	for _, c := range commits {
		if c.LessonID != "" {
			tagged = append(tagged, c)
		}
	}
	return tagged
}

// LessonIDSet collects the canonical lesson identifiers present in the
// given commits. Untagged commits contribute nothing.
func LessonIDSet(commits []Commit) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range commits {
		if c.LessonID != "" {
			ids[c.LessonID] = struct{}{}
		}
	}
	return ids
}

// ExcludeLessonIDs drops commits whose lesson identifier appears in the
// exclusion set. Untagged commits are always kept.
func ExcludeLessonIDs(commits []Commit, exclude map[string]struct{}) []Commit {
	var kept []Commit
	for _, c := range commits {
		if c.LessonID != "" {
			if _, excluded := exclude[c.LessonID]; excluded {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// SortedByLessonID returns a copy of the commits ordered ascending by
// canonical lesson identifier. Zero-padded segments make plain string
// comparison agree with numeric order. The sort is stable so commits
// sharing an identifier keep their relative positions.
func SortedByLessonID(commits []Commit) []Commit {
	sorted := make([]Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LessonID < sorted[j].LessonID
	})
	return sorted
}

// LastWithLessonID returns the last commit in list order carrying the
// given canonical identifier. With oldest-first input this selects the
// most recent occurrence when a lesson was committed more than once.
func LastWithLessonID(commits []Commit, lessonID string) (Commit, bool) {
	for i := len(commits) - 1; i >= 0; i-- {
		if commits[i].LessonID == lessonID {
			return commits[i], true
		}
	}
	return Commit{}, false
}
