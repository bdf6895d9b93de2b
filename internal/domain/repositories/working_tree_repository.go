package repositories

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// WorkingTreeRepository abstracts the local working tree and the git tool around it.
// Implementations own the repository handle for the lifetime of a publish run.
type WorkingTreeRepository interface {
	// Root returns the absolute path of the working tree.
	Root() string

	// Remotes lists the configured remotes in a stable order.
	Remotes(ctx context.Context) ([]entities.Remote, error)

	// AddRemote registers a new remote.
	AddRemote(ctx context.Context, remote entities.Remote) error

	// StageAll stages every working-tree change, including deletions.
	StageAll(ctx context.Context) error

	// StagedFiles returns the paths staged for the next commit, as reported by the index.
	StagedFiles(ctx context.Context) ([]string, error)

	// Commit records the staged changes and returns the new commit hash.
	Commit(ctx context.Context, message string) (string, error)

	// CurrentBranch returns the checked-out branch, or detached=true when HEAD
	// points at a commit rather than a branch.
	CurrentBranch(ctx context.Context) (branch string, detached bool, err error)

	// Push sends source (a local branch name or "HEAD") to the remote branch.
	Push(ctx context.Context, remote, source, branch string) error

	// Pull fetches and merges the remote branch into the checked-out one.
	Pull(ctx context.Context, remote, branch string) error

	// ReadFile returns the content of a working-tree file and whether it is executable.
	ReadFile(path string) (data []byte, executable bool, err error)
}

// WorkingTreeFactory checks for the git tool and opens (or initializes) a working tree.
type WorkingTreeFactory interface {
	// EnsureTool fails with entities.ErrToolMissing when git is absent or unsupported.
	EnsureTool(ctx context.Context) error

	// Open returns the repository rooted at dir, initializing one when dir is not a repository.
	Open(ctx context.Context, dir string) (WorkingTreeRepository, error)
}
