package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

const headRef = "HEAD"

// LocalPublisher commits with the local git tool and pushes through a configured remote,
// relying on whatever credentials git already has.
type LocalPublisher struct {
	tree     repositories.WorkingTreeRepository
	decider  DecisionProvider
	settings *entities.Settings
	log      logger.FieldLogger
	now      func() time.Time
}

// NewLocalPublisher creates a LocalPublisher over the given working tree.
func NewLocalPublisher(
	tree repositories.WorkingTreeRepository,
	decider DecisionProvider,
	settings *entities.Settings,
	log logger.FieldLogger,
) *LocalPublisher {
	return &LocalPublisher{
		tree:     tree,
		decider:  decider,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// Publish stages, commits, pushes and finally re-synchronizes with the remote branch.
func (it *LocalPublisher) Publish(ctx context.Context, message string) bool {
	remotes, ok := it.ensureRemote(ctx)
	if !ok {
		return false
	}

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

	message = entities.CommitMessage(message, it.settings.CommitTemplate, it.now())
	hash, err := it.tree.Commit(ctx, message)
	if err != nil {
		it.log.Errorf("Commit failed: %v", err)
		return false
	}
	it.log.Infof("Committed %s", hash)

	remote := it.selectRemote(ctx, remotes)
	branch, source, err := it.resolveBranch(ctx)
	if err != nil {
		it.log.Errorf("Failed to resolve the branch to push: %v", err)
		return false
	}

	it.log.Infof("Pushing to %s/%s...", remote.Name, branch)
	if pushErr := it.tree.Push(ctx, remote.Name, source, branch); pushErr != nil {
		it.log.Errorf("Push failed: %v", pushErr)
		return false
	}
	it.log.Info("Push succeeded")

	logCommitDetails(it.log, &entities.CommitRecord{
		Message: message,
		Hash:    hash,
		Branch:  branch,
		Remote:  remote.Name,
		Files:   changes,
	})

	syncAfterPublish(ctx, it.tree, it.log, it.settings.SyncDelay, remote.Name, branch)
	return true
}

// ensureRemote returns the configured remotes, registering one supplied by the
// operator when there are none.
func (it *LocalPublisher) ensureRemote(ctx context.Context) ([]entities.Remote, bool) {
	remotes, err := it.tree.Remotes(ctx)
	if err != nil {
		it.log.Errorf("Failed to list remotes: %v", err)
		return nil, false
	}
	if len(remotes) > 0 {
		return remotes, true
	}

	it.log.Warn("No remote repository found")
	url, ok := it.decider.RequestRemoteURL(ctx)
	if !ok || url == "" {
		it.log.Errorf("%v", fmt.Errorf("%w: operator declined to add one", entities.ErrRemoteMissing))
		return nil, false
	}

	remote := entities.Remote{Name: it.settings.RemoteName, URL: url}
	if addErr := it.tree.AddRemote(ctx, remote); addErr != nil {
		it.log.Errorf("Failed to add remote %q: %v", url, addErr)
		return nil, false
	}
	it.log.Infof("Added remote %s: %s", remote.Name, remote.URL)

	return []entities.Remote{remote}, true
}

func (it *LocalPublisher) selectRemote(ctx context.Context, remotes []entities.Remote) entities.Remote {
	if len(remotes) == 1 {
		it.log.Infof("Using remote: %s", remotes[0].Name)
		return remotes[0]
	}

	idx := it.decider.SelectRemote(ctx, remotes)
	if idx < 0 || idx >= len(remotes) {
		idx = 0
		it.log.Infof("Defaulting to remote: %s", remotes[idx].Name)
	}
	return remotes[idx]
}

// resolveBranch returns the remote branch name and the local source to push.
func (it *LocalPublisher) resolveBranch(ctx context.Context) (string, string, error) {
	branch, detached, err := it.tree.CurrentBranch(ctx)
	if err != nil {
		return "", "", err
	}
	if detached {
		it.log.Warnf("HEAD is detached, pushing to the %q branch", it.settings.FallbackBranch)
		return it.settings.FallbackBranch, headRef, nil
	}
	return branch, branch, nil
}
