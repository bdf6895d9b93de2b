//go:build unit

package git //nolint:testpackage // tests unexported functions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitError(t *testing.T) {
	t.Parallel()

	t.Run("should include the operation, output and cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("exit status 1")
		err := &GitError{Operation: "push", Args: []string{"push", "origin"}, Output: "fatal: oops", Err: cause}

		// when
		msg := err.Error()

		// then
		assert.Equal(t, "git push failed: fatal: oops: exit status 1", msg)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should omit an empty output", func(t *testing.T) {
		t.Parallel()

		// given
		err := &GitError{Operation: "add"}

		// when
		msg := err.Error()

		// then
		assert.Equal(t, "git add failed", msg)
	})
}

func TestIsRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		expected bool
	}{
		{
			name:     "should detect a non-fast-forward rejection",
			output:   " ! [rejected]        main -> main (non-fast-forward)",
			expected: true,
		},
		{
			name:     "should detect a remote hook rejection",
			output:   " ! [remote rejected] main -> main (pre-receive hook declined)",
			expected: true,
		},
		{
			name:     "should detect an authentication failure regardless of case",
			output:   "remote: Invalid username or password.\nfatal: Authentication failed for 'https://github.com/acme/widgets.git/'",
			expected: true,
		},
		{
			name:     "should detect a missing terminal for credentials",
			output:   "fatal: could not read Username for 'https://github.com': terminal prompts disabled",
			expected: true,
		},
		{
			name:     "should not flag an unrelated failure",
			output:   "fatal: 'origin' does not appear to be a git repository",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			output := tt.output

			// when
			result := isRejection(output)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestOperationName(t *testing.T) {
	t.Parallel()

	t.Run("should return the first argument", func(t *testing.T) {
		t.Parallel()

		// given
		args := []string{"push", "origin", "main:refs/heads/main"}

		// when
		name := operationName(args)

		// then
		assert.Equal(t, "push", name)
	})

	t.Run("should skip config overrides", func(t *testing.T) {
		t.Parallel()

		// given
		args := []string{"-c", "core.quotepath=off", "diff", "--cached"}

		// when
		name := operationName(args)

		// then
		assert.Equal(t, "diff", name)
	})

	t.Run("should return empty for no arguments", func(t *testing.T) {
		t.Parallel()

		// given
		var args []string

		// when
		name := operationName(args)

		// then
		assert.Empty(t, name)
	})
}

func TestParseGitVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{name: "should parse a plain version", output: "git version 2.43.0\n", expected: "v2.43.0"},
		{name: "should parse an Apple build", output: "git version 2.39.2 (Apple Git-143)", expected: "v2.39.2"},
		{name: "should parse a Windows build", output: "git version 2.41.0.windows.1", expected: "v2.41.0"},
		{name: "should parse a two-part version", output: "git version 1.8", expected: "v1.8"},
		{name: "should return empty for a non-numeric version", output: "git version dev", expected: ""},
		{name: "should return empty for unexpected output", output: "command not found", expected: ""},
		{name: "should return empty for empty output", output: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			output := tt.output

			// when
			version := parseGitVersion(output)

			// then
			assert.Equal(t, tt.expected, version)
		})
	}
}
