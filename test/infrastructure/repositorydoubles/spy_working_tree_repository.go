//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io/fs"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// PushCall records the arguments of one Push.
type PushCall struct {
	Remote string
	Source string
	Branch string
}

// PullCall records the arguments of one Pull.
type PullCall struct {
	Remote string
	Branch string
}

// SpyWorkingTreeRepository implements repositories.WorkingTreeRepository as a configurable spy.
type SpyWorkingTreeRepository struct {
	RootDir string

	// --- Remotes / AddRemote ---
	RemoteList   []entities.Remote
	RemotesErr   error
	AddRemoteErr error
	AddedRemotes []entities.Remote

	// --- StageAll / StagedFiles ---
	StageErr       error
	StageCallCount int
	Staged         []string
	StagedErr      error

	// --- Commit ---
	CommitHash     string
	CommitErr      error
	CommitMessages []string

	// --- CurrentBranch ---
	Branch    string
	Detached  bool
	BranchErr error

	// --- Push / Pull ---
	PushErr error
	Pushes  []PushCall
	PullErr error
	Pulls   []PullCall

	// --- ReadFile ---
	Files           map[string][]byte
	ExecutableFiles map[string]bool
	ReadErrs        map[string]error
}

var _ repositories.WorkingTreeRepository = (*SpyWorkingTreeRepository)(nil)

func (s *SpyWorkingTreeRepository) Root() string { return s.RootDir }

func (s *SpyWorkingTreeRepository) Remotes(_ context.Context) ([]entities.Remote, error) {
	return s.RemoteList, s.RemotesErr
}

func (s *SpyWorkingTreeRepository) AddRemote(_ context.Context, remote entities.Remote) error {
	if s.AddRemoteErr != nil {
		return s.AddRemoteErr
	}
	s.AddedRemotes = append(s.AddedRemotes, remote)
	s.RemoteList = append(s.RemoteList, remote)
	return nil
}

func (s *SpyWorkingTreeRepository) StageAll(_ context.Context) error {
	s.StageCallCount++
	return s.StageErr
}

func (s *SpyWorkingTreeRepository) StagedFiles(_ context.Context) ([]string, error) {
	return s.Staged, s.StagedErr
}

func (s *SpyWorkingTreeRepository) Commit(_ context.Context, message string) (string, error) {
	if s.CommitErr != nil {
		return "", s.CommitErr
	}
	s.CommitMessages = append(s.CommitMessages, message)
	if s.CommitHash == "" {
		return "0123456789abcdef0123456789abcdef01234567", nil
	}
	return s.CommitHash, nil
}

func (s *SpyWorkingTreeRepository) CurrentBranch(_ context.Context) (string, bool, error) {
	return s.Branch, s.Detached, s.BranchErr
}

func (s *SpyWorkingTreeRepository) Push(_ context.Context, remote, source, branch string) error {
	s.Pushes = append(s.Pushes, PushCall{Remote: remote, Source: source, Branch: branch})
	return s.PushErr
}

func (s *SpyWorkingTreeRepository) Pull(_ context.Context, remote, branch string) error {
	s.Pulls = append(s.Pulls, PullCall{Remote: remote, Branch: branch})
	return s.PullErr
}

func (s *SpyWorkingTreeRepository) ReadFile(path string) ([]byte, bool, error) {
	if err, ok := s.ReadErrs[path]; ok {
		return nil, false, err
	}
	if data, ok := s.Files[path]; ok {
		return data, s.ExecutableFiles[path], nil
	}
	return nil, false, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}
