//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autopublish/internal/domain/commands"
	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/test/domain/commanddoubles"
	"github.com/rios0rios0/autopublish/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/autopublish/test/infrastructure/repositorydoubles"
)

func newOriginTree(staged ...string) *doubles.SpyWorkingTreeRepository {
	return &doubles.SpyWorkingTreeRepository{
		RemoteList: []entities.Remote{{Name: "origin", URL: "git@github.com:acme/widgets.git"}},
		Staged:     staged,
		Branch:     "main",
	}
}

func hasEntry(hook *logrustest.Hook, level logrus.Level, fragment string) bool {
	for _, entry := range hook.AllEntries() {
		if entry.Level == level && strings.Contains(entry.Message, fragment) {
			return true
		}
	}
	return false
}

func TestLocalPublisherPublish(t *testing.T) {
	t.Parallel()

	t.Run("should commit with the given message and push when a single remote is configured", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		decider := &commanddoubles.StubDecisionProvider{}
		log, hook := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(tree, decider, entitybuilders.NewSettingsBuilder().BuildSettings(), log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		assert.Equal(t, []string{"fix"}, tree.CommitMessages)
		assert.Equal(t, []doubles.PushCall{{Remote: "origin", Source: "main", Branch: "main"}}, tree.Pushes)
		assert.Equal(t, []doubles.PullCall{{Remote: "origin", Branch: "main"}}, tree.Pulls)
		assert.Zero(t, decider.SelectionRequests)
		assert.Zero(t, decider.URLRequests)
		assert.True(t, hasEntry(hook, logrus.InfoLevel, "Files to publish: a.txt"))
	})

	t.Run("should return false without committing when the change set is empty", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree()
		log, hook := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Equal(t, 1, tree.StageCallCount)
		assert.Empty(t, tree.CommitMessages)
		assert.Empty(t, tree.Pushes)
		assert.True(t, hasEntry(hook, logrus.InfoLevel, "Nothing to publish"))
	})

	t.Run("should treat a change set of hidden files as empty", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree(".env", ".github/workflows/ci.yaml", "config/.secret")
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "")

		// then
		assert.False(t, result)
		assert.Empty(t, tree.CommitMessages)
		assert.Empty(t, tree.Pushes)
	})

	t.Run("should return false without committing when no remote exists and the operator quits", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.RemoteList = nil
		decider := &commanddoubles.StubDecisionProvider{DeclineRemote: true}
		log, hook := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(tree, decider, entitybuilders.NewSettingsBuilder().BuildSettings(), log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Equal(t, 1, decider.URLRequests)
		assert.Zero(t, tree.StageCallCount)
		assert.Empty(t, tree.CommitMessages)
		assert.Empty(t, tree.AddedRemotes)
		assert.True(t, hasEntry(hook, logrus.ErrorLevel, entities.ErrRemoteMissing.Error()))
	})

	t.Run("should register the remote supplied by the operator when none exists", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.RemoteList = nil
		decider := &commanddoubles.StubDecisionProvider{RemoteURL: "https://github.com/acme/widgets.git"}
		log, _ := logrustest.NewNullLogger()
		settings := entitybuilders.NewSettingsBuilder().WithRemoteName("upstream").BuildSettings()
		publisher := commands.NewLocalPublisher(tree, decider, settings, log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		assert.Equal(t, []entities.Remote{{Name: "upstream", URL: "https://github.com/acme/widgets.git"}}, tree.AddedRemotes)
		require.Len(t, tree.Pushes, 1)
		assert.Equal(t, "upstream", tree.Pushes[0].Remote)
		assert.Zero(t, decider.SelectionRequests)
	})

	t.Run("should return false when the remote cannot be registered", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.RemoteList = nil
		tree.AddRemoteErr = errors.New("invalid url")
		decider := &commanddoubles.StubDecisionProvider{RemoteURL: "::"}
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(tree, decider, entitybuilders.NewSettingsBuilder().BuildSettings(), log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Empty(t, tree.CommitMessages)
	})

	t.Run("should push to the remote the operator selects among several", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.RemoteList = append(tree.RemoteList, entities.Remote{Name: "mirror", URL: "git@gitlab.com:acme/widgets.git"})
		decider := &commanddoubles.StubDecisionProvider{Selection: 1}
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(tree, decider, entitybuilders.NewSettingsBuilder().BuildSettings(), log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		assert.Equal(t, 1, decider.SelectionRequests)
		assert.Len(t, decider.OfferedRemotes, 2)
		require.Len(t, tree.Pushes, 1)
		assert.Equal(t, "mirror", tree.Pushes[0].Remote)
		assert.Equal(t, []doubles.PullCall{{Remote: "mirror", Branch: "main"}}, tree.Pulls)
	})

	t.Run("should fall back to the first remote when the selection is out of range", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.RemoteList = append(tree.RemoteList, entities.Remote{Name: "mirror", URL: "git@gitlab.com:acme/widgets.git"})
		decider := &commanddoubles.StubDecisionProvider{Selection: 7}
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(tree, decider, entitybuilders.NewSettingsBuilder().BuildSettings(), log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		require.Len(t, tree.Pushes, 1)
		assert.Equal(t, "origin", tree.Pushes[0].Remote)
	})

	t.Run("should push HEAD to the fallback branch and warn when HEAD is detached", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.Branch = ""
		tree.Detached = true
		log, hook := logrustest.NewNullLogger()
		settings := entitybuilders.NewSettingsBuilder().WithFallbackBranch("trunk").BuildSettings()
		publisher := commands.NewLocalPublisher(tree, &commanddoubles.StubDecisionProvider{}, settings, log)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		assert.Equal(t, []doubles.PushCall{{Remote: "origin", Source: "HEAD", Branch: "trunk"}}, tree.Pushes)
		assert.True(t, hasEntry(hook, logrus.WarnLevel, "detached"))
	})

	t.Run("should return false and skip the sync when the push is rejected", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.PushErr = fmt.Errorf("%w: non-fast-forward", entities.ErrPushRejected)
		log, hook := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Len(t, tree.Pushes, 1)
		assert.Empty(t, tree.Pulls)
		assert.True(t, hasEntry(hook, logrus.ErrorLevel, "push rejected"))
	})

	t.Run("should stay successful when the sync pull fails", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.PullErr = errors.New("merge conflict")
		log, hook := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.True(t, result)
		assert.Len(t, tree.Pulls, 1)
		assert.True(t, hasEntry(hook, logrus.ErrorLevel, entities.ErrSyncFailed.Error()))
	})

	t.Run("should return false when the commit fails", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.CommitErr = errors.New("author field is required")
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Empty(t, tree.Pushes)
	})

	t.Run("should return false when staging fails", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		tree.StageErr = errors.New("index.lock exists")
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)

		// when
		result := publisher.Publish(context.Background(), "fix")

		// then
		assert.False(t, result)
		assert.Empty(t, tree.CommitMessages)
	})

	t.Run("should use the timestamped default message when the message is blank", func(t *testing.T) {
		t.Parallel()

		// given
		tree := newOriginTree("a.txt")
		log, _ := logrustest.NewNullLogger()
		publisher := commands.NewLocalPublisher(
			tree, &commanddoubles.StubDecisionProvider{}, entitybuilders.NewSettingsBuilder().BuildSettings(), log,
		)
		commands.SetLocalClock(publisher, func() time.Time {
			return time.Date(2026, 10, 19, 10, 20, 30, 0, time.Local)
		})

		// when
		result := publisher.Publish(context.Background(), "")

		// then
		assert.True(t, result)
		assert.Equal(t, []string{"update files - 2026-10-19 10:20:30"}, tree.CommitMessages)
	})
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("should return immediately for a zero delay", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()

		// when
		err := commands.Wait(ctx, 0)

		// then
		require.NoError(t, err)
	})

	t.Run("should stop waiting when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := commands.Wait(ctx, time.Hour)

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}
