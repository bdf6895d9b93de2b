package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

const (
	// ProviderName is the registry key for GitHub.
	ProviderName = "github"

	defaultUserAgent = "autopublish"
	blobType         = "blob"
	headsPrefix      = "refs/heads/"
)

// GitHubHostingRepository implements repositories.HostingRepository with the Git Data API:
// blobs, then a tree on top of the base tree, then a commit, then the branch reference.
type GitHubHostingRepository struct {
	client *gh.Client
}

// NewHostingRepository creates a GitHub client authenticated with token. A non-empty
// baseURL targets a GitHub Enterprise instance.
func NewHostingRepository(
	ctx context.Context,
	token, baseURL string,
) (repositories.HostingRepository, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: github token is required", entities.ErrConfigurationMissing)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("construct enterprise github client: %w", err)
		}
	}
	client.UserAgent = defaultUserAgent

	return newGitHubHostingRepository(client), nil
}

func newGitHubHostingRepository(client *gh.Client) *GitHubHostingRepository {
	return &GitHubHostingRepository{client: client}
}

func (p *GitHubHostingRepository) Name() string { return ProviderName }

func (p *GitHubHostingRepository) Authenticate(ctx context.Context) (string, error) {
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", classifyError(err))
	}
	return user.GetLogin(), nil
}

func (p *GitHubHostingRepository) GetRepository(
	ctx context.Context,
	owner, name string,
) (entities.Repository, error) {
	repo, _, err := p.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return entities.Repository{}, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, classifyError(err))
	}

	defaultBranch := repo.GetDefaultBranch()
	if defaultBranch == "" {
		defaultBranch = entities.DefaultFallbackBranch
	}
	organization := repo.GetOwner().GetLogin()
	if organization == "" {
		organization = owner
	}

	return entities.Repository{
		ID:            strconv.FormatInt(repo.GetID(), 10),
		Name:          repo.GetName(),
		Organization:  organization,
		DefaultBranch: headsPrefix + defaultBranch,
		RemoteURL:     repo.GetCloneURL(),
		SSHURL:        repo.GetSSHURL(),
		ProviderName:  ProviderName,
	}, nil
}

func (p *GitHubHostingRepository) GetHead(
	ctx context.Context,
	repo entities.Repository,
	branch string,
) (entities.Head, error) {
	branch = strings.TrimPrefix(branch, headsPrefix)

	ref, _, err := p.client.Git.GetRef(ctx, repo.Organization, repo.Name, headsPrefix+branch)
	if err != nil {
		return entities.Head{}, fmt.Errorf("failed to get branch ref %q: %w", branch, classifyError(err))
	}
	commitSHA := ref.GetObject().GetSHA()

	commit, _, err := p.client.Git.GetCommit(ctx, repo.Organization, repo.Name, commitSHA)
	if err != nil {
		return entities.Head{}, fmt.Errorf("failed to get commit %s: %w", commitSHA, classifyError(err))
	}

	return entities.Head{
		Branch:    branch,
		CommitSHA: commitSHA,
		TreeSHA:   commit.GetTree().GetSHA(),
	}, nil
}

func (p *GitHubHostingRepository) CommitChanges(
	ctx context.Context,
	repo entities.Repository,
	input entities.CommitInput,
) (*entities.CommitRecord, error) {
	owner := repo.Organization
	repoName := repo.Name

	// Create a blob per file and reference it from a tree entry
	entries := make([]*gh.TreeEntry, 0, len(input.Blobs))
	for _, blob := range input.Blobs {
		created, _, err := p.client.Git.CreateBlob(ctx, owner, repoName, &gh.Blob{
			Content:  ptr(blob.Content),
			Encoding: ptr(blob.Encoding),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create blob for %q: %w", blob.Path, classifyError(err))
		}

		entries = append(entries, &gh.TreeEntry{
			Path: ptr(strings.TrimPrefix(blob.Path, "/")),
			Mode: ptr(blob.Mode),
			Type: ptr(blobType),
			SHA:  created.SHA,
		})
	}

	// Create new tree
	newTree, _, err := p.client.Git.CreateTree(ctx, owner, repoName, input.Head.TreeSHA, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree: %w", classifyError(err))
	}

	// Create commit
	newCommit, _, err := p.client.Git.CreateCommit(
		ctx, owner, repoName,
		&gh.Commit{
			Message: ptr(input.Message),
			Tree:    newTree,
			Parents: []*gh.Commit{{SHA: ptr(input.Head.CommitSHA)}},
		},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", classifyError(err))
	}

	// Move the branch last; a non-fast-forward update is refused by GitHub
	_, _, err = p.client.Git.UpdateRef(
		ctx, owner, repoName,
		&gh.Reference{
			Ref:    ptr(headsPrefix + input.Head.Branch),
			Object: &gh.GitObject{SHA: newCommit.SHA},
		},
		false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update branch %q: %w", input.Head.Branch, classifyRefError(err))
	}

	files := make(entities.ChangeSet, 0, len(input.Blobs))
	for _, blob := range input.Blobs {
		files = append(files, blob.Path)
	}

	return &entities.CommitRecord{
		Message: input.Message,
		Hash:    newCommit.GetSHA(),
		Branch:  input.Head.Branch,
		Files:   files,
	}, nil
}

// classifyError maps GitHub status codes onto the domain error kinds.
func classifyError(err error) error {
	var respErr *gh.ErrorResponse
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return err
	}

	switch respErr.Response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", entities.ErrAuthenticationFailed, err)
	case http.StatusNotFound, http.StatusConflict:
		// 409 is returned for an empty repository with no branches
		return fmt.Errorf("%w: %w", entities.ErrRepositoryNotFound, err)
	default:
		return err
	}
}

// classifyRefError treats a refused reference update as a rejected push.
func classifyRefError(err error) error {
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("%w: %w", entities.ErrPushRejected, err)
	}
	return classifyError(err)
}

func ptr[T any](v T) *T { return &v }
