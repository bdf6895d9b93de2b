package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// Publisher commits the current working-tree changes and publishes them.
// It reports success as a boolean; failures are logged, never returned.
type Publisher interface {
	Publish(ctx context.Context, message string) bool
}

// collectChanges stages everything and returns the visible staged paths.
func collectChanges(
	ctx context.Context,
	tree repositories.WorkingTreeRepository,
) (entities.ChangeSet, error) {
	if err := tree.StageAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to stage changes: %w", err)
	}

	staged, err := tree.StagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}

	return entities.NewChangeSet(staged), nil
}

// syncAfterPublish waits for delay and then pulls remote/branch. It never fails the publish.
func syncAfterPublish(
	ctx context.Context,
	tree repositories.WorkingTreeRepository,
	log logger.FieldLogger,
	delay time.Duration,
	remote, branch string,
) {
	log.Infof("Waiting %s before syncing with %s/%s...", delay, remote, branch)
	if err := wait(ctx, delay); err != nil {
		log.Warnf("Sync with %s/%s skipped: %v", remote, branch, err)
		return
	}

	if err := tree.Pull(ctx, remote, branch); err != nil {
		log.Errorf("%v", fmt.Errorf("%w: %w", entities.ErrSyncFailed, err))
		return
	}
	log.Info("Sync completed")
}

func logCommitDetails(log logger.FieldLogger, record *entities.CommitRecord) {
	fields := logger.Fields{
		"sha":    record.Hash,
		"branch": record.Branch,
	}
	if record.Remote != "" {
		fields["remote"] = record.Remote
	}
	log.WithFields(fields).Infof("Published %d file(s): %s", len(record.Files), record.Files)
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
