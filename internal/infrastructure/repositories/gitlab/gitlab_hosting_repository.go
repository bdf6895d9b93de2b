package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

const (
	// ProviderName is the registry key for GitLab.
	ProviderName = "gitlab"

	perPage     = 100
	headsPrefix = "refs/heads/"
)

// GitLabHostingRepository implements repositories.HostingRepository with the Commits API.
// GitLab creates the blobs, tree and commit and moves the branch in a single request.
type GitLabHostingRepository struct {
	client *gl.Client
}

// NewHostingRepository creates a GitLab client authenticated with token. A non-empty
// baseURL targets a self-managed instance.
func NewHostingRepository(
	_ context.Context,
	token, baseURL string,
) (repositories.HostingRepository, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: gitlab token is required", entities.ErrConfigurationMissing)
	}

	var opts []gl.ClientOptionFunc
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, gl.WithBaseURL(baseURL))
	}

	client, err := gl.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return newGitLabHostingRepository(client), nil
}

func newGitLabHostingRepository(client *gl.Client) *GitLabHostingRepository {
	return &GitLabHostingRepository{client: client}
}

func (p *GitLabHostingRepository) Name() string { return ProviderName }

func (p *GitLabHostingRepository) Authenticate(ctx context.Context) (string, error) {
	user, _, err := p.client.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", classifyError(err))
	}
	return user.Username, nil
}

func (p *GitLabHostingRepository) GetRepository(
	ctx context.Context,
	owner, name string,
) (entities.Repository, error) {
	project, _, err := p.client.Projects.GetProject(owner+"/"+name, nil, gl.WithContext(ctx))
	if err != nil {
		return entities.Repository{}, fmt.Errorf("failed to get project %s/%s: %w", owner, name, classifyError(err))
	}

	defaultBranch := project.DefaultBranch
	if defaultBranch == "" {
		defaultBranch = entities.DefaultFallbackBranch
	}
	organization := owner
	if project.Namespace != nil && project.Namespace.FullPath != "" {
		organization = project.Namespace.FullPath
	}

	return entities.Repository{
		ID:            fmt.Sprint(project.ID),
		Name:          project.Path,
		Organization:  organization,
		DefaultBranch: headsPrefix + defaultBranch,
		RemoteURL:     project.HTTPURLToRepo,
		SSHURL:        project.SSHURLToRepo,
		ProviderName:  ProviderName,
	}, nil
}

func (p *GitLabHostingRepository) GetHead(
	ctx context.Context,
	repo entities.Repository,
	branch string,
) (entities.Head, error) {
	branch = strings.TrimPrefix(branch, headsPrefix)

	b, _, err := p.client.Branches.GetBranch(projectID(repo), branch, gl.WithContext(ctx))
	if err != nil {
		return entities.Head{}, fmt.Errorf("failed to get branch %q: %w", branch, classifyError(err))
	}
	if b.Commit == nil {
		return entities.Head{}, fmt.Errorf("%w: branch %q has no commits", entities.ErrRepositoryNotFound, branch)
	}

	return entities.Head{Branch: branch, CommitSHA: b.Commit.ID}, nil
}

// CommitChanges sends every blob as a create or update action of one commit. GitLab has
// no compare-and-swap on the parent, so the branch tip is re-read first and a moved
// branch is reported as a rejected push.
func (p *GitLabHostingRepository) CommitChanges(
	ctx context.Context,
	repo entities.Repository,
	input entities.CommitInput,
) (*entities.CommitRecord, error) {
	pid := projectID(repo)

	current, err := p.GetHead(ctx, repo, input.Head.Branch)
	if err != nil {
		return nil, err
	}
	if input.Head.CommitSHA != "" && current.CommitSHA != input.Head.CommitSHA {
		return nil, fmt.Errorf(
			"%w: branch %q moved from %s to %s",
			entities.ErrPushRejected, input.Head.Branch, input.Head.CommitSHA, current.CommitSHA,
		)
	}

	existing, err := p.listPaths(ctx, pid, input.Head.Branch)
	if err != nil {
		return nil, err
	}

	actions := make([]*gl.CommitActionOptions, 0, len(input.Blobs))
	for _, blob := range input.Blobs {
		action := gl.FileCreate
		if existing[blob.Path] {
			action = gl.FileUpdate
		}
		encoding := "text"
		if blob.IsBinary() {
			encoding = entities.EncodingBase64
		}
		actions = append(actions, &gl.CommitActionOptions{
			Action:          gl.Ptr(action),
			FilePath:        gl.Ptr(strings.TrimPrefix(blob.Path, "/")),
			Content:         gl.Ptr(blob.Content),
			Encoding:        gl.Ptr(encoding),
			ExecuteFilemode: gl.Ptr(blob.Mode == entities.ModeExecutable),
		})
	}

	commit, _, err := p.client.Commits.CreateCommit(
		pid,
		&gl.CreateCommitOptions{
			Branch:        gl.Ptr(input.Head.Branch),
			CommitMessage: gl.Ptr(input.Message),
			Actions:       actions,
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", classifyError(err))
	}

	files := make(entities.ChangeSet, 0, len(input.Blobs))
	for _, blob := range input.Blobs {
		files = append(files, blob.Path)
	}

	return &entities.CommitRecord{
		Message: input.Message,
		Hash:    commit.ID,
		Branch:  input.Head.Branch,
		Files:   files,
	}, nil
}

// listPaths returns the set of file paths on branch.
func (p *GitLabHostingRepository) listPaths(
	ctx context.Context,
	pid, branch string,
) (map[string]bool, error) {
	paths := make(map[string]bool)
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Ref:         gl.Ptr(branch),
		Recursive:   gl.Ptr(true),
	}

	for {
		nodes, resp, err := p.client.Repositories.ListTree(pid, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list tree: %w", classifyError(err))
		}

		for _, node := range nodes {
			if node.Type == "blob" {
				paths[node.Path] = true
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return paths, nil
}

func projectID(repo entities.Repository) string {
	return repo.Organization + "/" + repo.Name
}

// classifyError maps GitLab status codes onto the domain error kinds.
func classifyError(err error) error {
	if errors.Is(err, gl.ErrNotFound) {
		return fmt.Errorf("%w: %w", entities.ErrRepositoryNotFound, err)
	}

	var respErr *gl.ErrorResponse
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return err
	}

	switch respErr.Response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", entities.ErrAuthenticationFailed, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", entities.ErrRepositoryNotFound, err)
	default:
		return err
	}
}
