package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// WorkingTreeRepository implements repositories.WorkingTreeRepository. The repository
// handle, remotes, HEAD and commits go through go-git; staging, diffing and network
// operations shell out to git so that the user's credential helpers, SSH agent and
// ignore rules apply.
type WorkingTreeRepository struct {
	repo   *gogit.Repository
	root   string
	binary string
	log    logger.FieldLogger
}

func newWorkingTreeRepository(
	repo *gogit.Repository,
	root, binary string,
	log logger.FieldLogger,
) *WorkingTreeRepository {
	return &WorkingTreeRepository{
		repo:   repo,
		root:   root,
		binary: binary,
		log:    log,
	}
}

func (r *WorkingTreeRepository) Root() string { return r.root }

// Remotes lists the configured remotes with "origin" first and the rest by name.
func (r *WorkingTreeRepository) Remotes(_ context.Context) ([]entities.Remote, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	result := make([]entities.Remote, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		url := ""
		if len(cfg.URLs) > 0 {
			url = cfg.URLs[0]
		}
		result = append(result, entities.Remote{Name: cfg.Name, URL: url})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if (result[i].Name == entities.DefaultRemoteName) != (result[j].Name == entities.DefaultRemoteName) {
			return result[i].Name == entities.DefaultRemoteName
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *WorkingTreeRepository) AddRemote(_ context.Context, remote entities.Remote) error {
	//nolint:exhaustruct // Minimal RemoteConfig initialization with required fields only
	if _, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: remote.Name,
		URLs: []string{remote.URL},
	}); err != nil {
		return fmt.Errorf("failed to create remote %q: %w", remote.Name, err)
	}
	return nil
}

func (r *WorkingTreeRepository) StageAll(ctx context.Context) error {
	_, err := r.run(ctx, "add", "--all")
	return err
}

// StagedFiles returns the NUL-separated output of "git diff --name-only --cached"
// so that paths with spaces or non-ASCII characters survive unquoted.
func (r *WorkingTreeRepository) StagedFiles(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "-c", "core.quotepath=off", "diff", "--name-only", "--cached", "-z")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range strings.Split(output, "\x00") {
		if path != "" {
			files = append(files, path)
		}
	}
	return files, nil
}

// Commit records the index with the author configured in git (local, global or system scope).
func (r *WorkingTreeRepository) Commit(_ context.Context, message string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	//nolint:exhaustruct // author and committer are loaded from git config
	hash, err := worktree.Commit(message, &gogit.CommitOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

func (r *WorkingTreeRepository) CurrentBranch(_ context.Context) (string, bool, error) {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", false, fmt.Errorf("failed to read HEAD: %w", err)
	}

	// HEAD -> refs/heads/<name>, whether or not the branch has commits yet
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), false, nil
	}
	return "", true, nil
}

func (r *WorkingTreeRepository) Push(ctx context.Context, remote, source, branch string) error {
	refspec := fmt.Sprintf("%s:refs/heads/%s", source, branch)
	output, err := r.run(ctx, "push", remote, refspec)
	if err != nil {
		if isRejection(output) || isRejection(err.Error()) {
			return fmt.Errorf("%w: %w", entities.ErrPushRejected, err)
		}
		return err
	}
	r.log.Debugf("git push output:\n%s", output)
	return nil
}

func (r *WorkingTreeRepository) Pull(ctx context.Context, remote, branch string) error {
	output, err := r.run(ctx, "pull", "--no-edit", remote, branch)
	if err != nil {
		return err
	}
	r.log.Debugf("git pull output:\n%s", output)
	return nil
}

func (r *WorkingTreeRepository) ReadFile(path string) ([]byte, bool, error) {
	fullPath := filepath.Join(r.root, filepath.FromSlash(path))

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, false, err
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, false, err
	}
	return data, info.Mode().Perm()&0o111 != 0, nil
}

// run executes git in the working tree root and returns its combined output.
func (r *WorkingTreeRepository) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.root
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	r.log.Debugf("Running git %s", strings.Join(args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), &GitError{
			Operation: operationName(args),
			Args:      args,
			Output:    strings.TrimSpace(string(output)),
			Err:       err,
		}
	}
	return string(output), nil
}

// operationName skips leading "-c key=value" pairs to find the subcommand.
func operationName(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
