package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

const (
	defaultBinary = "git"
	// minGitVersion is the oldest git whose "add --all" and "diff --cached" behave as expected.
	minGitVersion = "v2.0.0"
)

// WorkingTreeFactory locates the git binary and opens repositories with go-git.
type WorkingTreeFactory struct {
	binary string
	log    logger.FieldLogger
}

// NewWorkingTreeFactory creates a factory that uses the git binary found in PATH.
func NewWorkingTreeFactory(log logger.FieldLogger) *WorkingTreeFactory {
	return &WorkingTreeFactory{binary: defaultBinary, log: log}
}

// EnsureTool fails with entities.ErrToolMissing when git cannot be found or is too old.
func (f *WorkingTreeFactory) EnsureTool(ctx context.Context) error {
	path, err := exec.LookPath(f.binary)
	if err != nil {
		return fmt.Errorf("%w: install git and make sure it is in PATH", entities.ErrToolMissing)
	}

	output, err := exec.CommandContext(ctx, path, "version").Output()
	if err != nil {
		return fmt.Errorf("%w: %q version: %w", entities.ErrToolMissing, path, err)
	}

	version := parseGitVersion(string(output))
	if !semver.IsValid(version) {
		f.log.Warnf("Could not parse git version from %q, continuing", strings.TrimSpace(string(output)))
		return nil
	}
	if semver.Compare(version, minGitVersion) < 0 {
		return fmt.Errorf("%w: git %s is older than %s", entities.ErrToolMissing, version, minGitVersion)
	}

	f.log.Debugf("Using git %s at %s", version, path)
	f.binary = path
	return nil
}

// Open returns the repository containing dir, running "git init" in dir when there is none.
func (f *WorkingTreeFactory) Open(ctx context.Context, dir string) (repositories.WorkingTreeRepository, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		f.log.Info("No Git repository found, initializing...")
		initCmd := exec.CommandContext(ctx, f.binary, "init")
		initCmd.Dir = absDir
		if output, initErr := initCmd.CombinedOutput(); initErr != nil {
			return nil, &GitError{
				Operation: "init",
				Args:      []string{"init"},
				Output:    strings.TrimSpace(string(output)),
				Err:       initErr,
			}
		}
		f.log.Info("Git repository initialized")
		repo, err = gogit.PlainOpen(absDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", absDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository at %s has no working tree: %w", absDir, err)
	}

	f.log.Infof("Using Git repository at %s", worktree.Filesystem.Root())
	return newWorkingTreeRepository(repo, worktree.Filesystem.Root(), f.binary, f.log), nil
}

// parseGitVersion turns "git version 2.39.2 (Apple Git-143)" or
// "git version 2.41.0.windows.1" into "v2.39.2" / "v2.41.0".
func parseGitVersion(output string) string {
	fields := strings.Fields(output)
	for i, field := range fields {
		if field != "version" || i+1 >= len(fields) {
			continue
		}

		parts := strings.Split(fields[i+1], ".")
		numeric := make([]string, 0, 3) //nolint:mnd // major.minor.patch
		for _, part := range parts {
			if len(numeric) == cap(numeric) || strings.TrimLeft(part, "0123456789") != "" || part == "" {
				break
			}
			numeric = append(numeric, part)
		}
		if len(numeric) == 0 {
			return ""
		}
		return "v" + strings.Join(numeric, ".")
	}
	return ""
}
