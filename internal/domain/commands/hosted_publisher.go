package commands

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// HostedPublisher publishes the working-tree changes through a hosting service API,
// then pulls the resulting commit back into the local clone.
type HostedPublisher struct {
	tree     repositories.WorkingTreeRepository
	hosting  repositories.HostingRepository
	settings *entities.Settings
	log      logger.FieldLogger
	now      func() time.Time
}

// NewHostedPublisher creates a HostedPublisher for the repository named in settings.Hosted.
func NewHostedPublisher(
	tree repositories.WorkingTreeRepository,
	hosting repositories.HostingRepository,
	settings *entities.Settings,
	log logger.FieldLogger,
) *HostedPublisher {
	return &HostedPublisher{
		tree:     tree,
		hosting:  hosting,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// Publish uploads every changed file as a blob and moves the default branch to a
// new commit built on top of its current head.
func (it *HostedPublisher) Publish(ctx context.Context, message string) bool {
	login, err := it.hosting.Authenticate(ctx)
	if err != nil {
		it.log.Errorf("Failed to authenticate with %s: %v", it.hosting.Name(), err)
		return false
	}
	it.log.Infof("Authenticated as %s", login)

	repo, err := it.hosting.GetRepository(ctx, it.settings.Hosted.Owner, it.settings.Hosted.Repository)
	if err != nil {
		it.log.Errorf("Failed to resolve repository: %v", err)
		return false
	}
	it.log.Infof("Repository: %s/%s", repo.Organization, repo.Name)

	head, err := it.hosting.GetHead(ctx, repo, strings.TrimPrefix(repo.DefaultBranch, "refs/heads/"))
	if err != nil {
		it.log.Errorf("Failed to read the head of %s: %v", repo.DefaultBranch, err)
		return false
	}
	it.log.Infof("Current commit: %s", head.CommitSHA)

	changes, err := collectChanges(ctx, it.tree)
	if err != nil {
		it.log.Errorf("Failed to get changed files: %v", err)
		return false
	}
	if changes.IsEmpty() {
		it.log.Info("Nothing to publish")
		return false
	}
	it.log.Infof("Files to publish: %s", changes)

	blobs := it.readBlobs(changes)
	if len(blobs) == 0 {
		it.log.Warn("None of the changed files could be read, nothing to publish")
		return false
	}

	record, err := it.hosting.CommitChanges(ctx, repo, entities.CommitInput{
		Message: entities.CommitMessage(message, it.settings.CommitTemplate, it.now()),
		Head:    head,
		Blobs:   blobs,
	})
	if err != nil {
		it.log.Errorf("Failed to publish through the %s API: %v", it.hosting.Name(), err)
		return false
	}
	logCommitDetails(it.log, record)

	it.syncLocalClone(ctx, repo, head.Branch)
	return true
}

// readBlobs loads each changed file; files that no longer exist are skipped.
func (it *HostedPublisher) readBlobs(changes entities.ChangeSet) []entities.Blob {
	blobs := make([]entities.Blob, 0, len(changes))
	for _, path := range changes {
		data, executable, err := it.tree.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			it.log.Warnf("File not found, skipping: %s", path)
			continue
		}
		if err != nil {
			it.log.Warnf("Failed to read %s, skipping: %v", path, err)
			continue
		}

		blob := entities.NewBlob(path, data, executable)
		it.log.Debugf("Prepared %s blob for %s", blob.Encoding, path)
		blobs = append(blobs, blob)
	}
	return blobs
}

// syncLocalClone pulls branch from the local remote that points at repo.
// When no remote matches, the sync is skipped rather than pulling an unrelated remote.
func (it *HostedPublisher) syncLocalClone(ctx context.Context, repo entities.Repository, branch string) {
	remotes, err := it.tree.Remotes(ctx)
	if err != nil {
		it.log.Warnf("Failed to list local remotes, skipping sync: %v", err)
		return
	}

	for _, remote := range remotes {
		info, parseErr := entities.ParseRemoteURL(remote.URL)
		if parseErr != nil || !info.Matches(repo.Organization, repo.Name) {
			continue
		}
		syncAfterPublish(ctx, it.tree, it.log, it.settings.SyncDelay, remote.Name, branch)
		return
	}

	it.log.Warnf(
		"No local remote points at %s/%s, skipping sync of the local clone",
		repo.Organization, repo.Name,
	)
}
