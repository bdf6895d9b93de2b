//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// StubWorkingTreeFactory is a stub implementation of repositories.WorkingTreeFactory.
type StubWorkingTreeFactory struct {
	ToolErr         error
	EnsureCallCount int

	Tree       repositories.WorkingTreeRepository
	OpenErr    error
	OpenedDirs []string
}

var _ repositories.WorkingTreeFactory = (*StubWorkingTreeFactory)(nil)

func (s *StubWorkingTreeFactory) EnsureTool(_ context.Context) error {
	s.EnsureCallCount++
	return s.ToolErr
}

func (s *StubWorkingTreeFactory) Open(
	_ context.Context,
	dir string,
) (repositories.WorkingTreeRepository, error) {
	s.OpenedDirs = append(s.OpenedDirs, dir)
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	return s.Tree, nil
}
