package repositories

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// HostingRepository abstracts a Git hosting service API (GitHub, GitLab).
// Errors wrap entities.ErrAuthenticationFailed, entities.ErrRepositoryNotFound or
// entities.ErrPushRejected when the service reports those conditions.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// Authenticate verifies the token and returns the account login.
	Authenticate(ctx context.Context) (string, error)

	// GetRepository resolves owner/name into a repository with its default branch.
	GetRepository(ctx context.Context, owner, name string) (entities.Repository, error)

	// GetHead returns the current commit and tree of the given branch.
	GetHead(ctx context.Context, repo entities.Repository, branch string) (entities.Head, error)

	// CommitChanges uploads the blobs and moves input.Head.Branch to a new commit whose
	// parent is input.Head.CommitSHA. The branch is moved last, and only when
	// every object was created.
	CommitChanges(
		ctx context.Context,
		repo entities.Repository,
		input entities.CommitInput,
	) (*entities.CommitRecord, error)
}
