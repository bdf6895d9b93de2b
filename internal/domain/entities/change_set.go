package entities

import "strings"

// ChangeSet is the ordered list of staged paths at the moment of a publish call.
type ChangeSet []string

// NewChangeSet builds a change set from raw staged paths, dropping empty entries and
// any path that has a hidden (dot-prefixed) segment.
func NewChangeSet(paths []string) ChangeSet {
	changes := make(ChangeSet, 0, len(paths))
	for _, path := range paths {
		if path == "" || isHidden(path) {
			continue
		}
		changes = append(changes, path)
	}
	return changes
}

// IsEmpty reports whether there is nothing to publish.
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// String joins the paths for log output.
func (c ChangeSet) String() string {
	return strings.Join(c, ", ")
}

func isHidden(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
