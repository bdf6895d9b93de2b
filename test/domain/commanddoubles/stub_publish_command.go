//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/commands"
	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// StubPublishCommand is a stub implementation of commands.Publish.
type StubPublishCommand struct {
	ExecuteCallCount int
	Published        bool
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.PublishOptions
}

var _ commands.Publish = (*StubPublishCommand)(nil)

func (s *StubPublishCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.PublishOptions,
) (bool, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Published, s.ExecuteErr
}
