package git

import (
	"fmt"
	"strings"
)

// GitError represents a failed git CLI invocation with its combined output.
type GitError struct {
	Operation string
	Args      []string
	Output    string
	Err       error
}

// Error implements the error interface with the command and its trimmed output.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *GitError) Unwrap() error {
	return e.Err
}

// rejectionMarkers are the fragments git prints when a remote refuses a push.
var rejectionMarkers = []string{ //nolint:gochecknoglobals // read-only lookup table
	"[rejected]",
	"[remote rejected]",
	"non-fast-forward",
	"fetch first",
	"authentication failed",
	"permission denied",
	"could not read username",
	"the requested url returned error: 403",
}

func isRejection(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range rejectionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
