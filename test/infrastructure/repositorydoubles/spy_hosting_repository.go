//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
type SpyHostingRepository struct {
	// --- identity ---
	ProviderName string

	// --- Authenticate ---
	Login         string
	AuthErr       error
	AuthCallCount int

	// --- GetRepository ---
	Repository     entities.Repository
	GetRepoErr     error
	RequestedRepos []string

	// --- GetHead ---
	Head         entities.Head
	HeadErr      error
	HeadBranches []string

	// --- CommitChanges ---
	Record       *entities.CommitRecord
	CommitErr    error
	CommitInputs []entities.CommitInput
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (s *SpyHostingRepository) Name() string { return s.ProviderName }

func (s *SpyHostingRepository) Authenticate(_ context.Context) (string, error) {
	s.AuthCallCount++
	return s.Login, s.AuthErr
}

func (s *SpyHostingRepository) GetRepository(
	_ context.Context, owner, name string,
) (entities.Repository, error) {
	s.RequestedRepos = append(s.RequestedRepos, owner+"/"+name)
	return s.Repository, s.GetRepoErr
}

func (s *SpyHostingRepository) GetHead(
	_ context.Context, _ entities.Repository, branch string,
) (entities.Head, error) {
	s.HeadBranches = append(s.HeadBranches, branch)
	return s.Head, s.HeadErr
}

func (s *SpyHostingRepository) CommitChanges(
	_ context.Context, _ entities.Repository, input entities.CommitInput,
) (*entities.CommitRecord, error) {
	s.CommitInputs = append(s.CommitInputs, input)
	if s.CommitErr != nil {
		return nil, s.CommitErr
	}
	if s.Record != nil {
		return s.Record, nil
	}

	files := make(entities.ChangeSet, 0, len(input.Blobs))
	for _, blob := range input.Blobs {
		files = append(files, blob.Path)
	}
	return &entities.CommitRecord{
		Message: input.Message,
		Hash:    "fedcba9876543210fedcba9876543210fedcba98",
		Branch:  input.Head.Branch,
		Files:   files,
	}, nil
}
