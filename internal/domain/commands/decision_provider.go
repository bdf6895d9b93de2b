package commands

import (
	"context"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// DecisionProvider supplies the operator choices a publish may need.
type DecisionProvider interface {
	// RequestRemoteURL asks for the URL of a new remote. ok is false when the operator declines.
	RequestRemoteURL(ctx context.Context) (url string, ok bool)

	// SelectRemote returns the index of the remote to push to.
	SelectRemote(ctx context.Context, remotes []entities.Remote) int
}
