//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/commands"
	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// StubDecisionProvider answers operator prompts with fixed values and counts the questions.
type StubDecisionProvider struct {
	RemoteURL     string
	DeclineRemote bool
	URLRequests   int

	Selection         int
	SelectionRequests int
	OfferedRemotes    []entities.Remote
}

var _ commands.DecisionProvider = (*StubDecisionProvider)(nil)

func (s *StubDecisionProvider) RequestRemoteURL(_ context.Context) (string, bool) {
	s.URLRequests++
	if s.DeclineRemote {
		return "", false
	}
	return s.RemoteURL, true
}

func (s *StubDecisionProvider) SelectRemote(_ context.Context, remotes []entities.Remote) int {
	s.SelectionRequests++
	s.OfferedRemotes = remotes
	return s.Selection
}
