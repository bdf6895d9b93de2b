package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
	"github.com/rios0rios0/autopublish/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autopublish/internal/infrastructure/repositories"
)

// Publish is the interface for the publish command.
type Publish interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PublishOptions) (bool, error)
}

// PublishOptions holds runtime options for a single publish.
type PublishOptions struct {
	Message string
	Decider DecisionProvider
}

// PublishCommand selects the publish strategy from the settings and runs it.
type PublishCommand struct {
	workingTrees    repositories.WorkingTreeFactory
	hostingRegistry *infraRepos.HostingRegistry
	log             logger.FieldLogger
}

// NewPublishCommand creates a new PublishCommand.
func NewPublishCommand(
	workingTrees repositories.WorkingTreeFactory,
	hostingRegistry *infraRepos.HostingRegistry,
	log logger.FieldLogger,
) *PublishCommand {
	return &PublishCommand{
		workingTrees:    workingTrees,
		hostingRegistry: hostingRegistry,
		log:             log,
	}
}

// Execute returns an error only when the publish could not be set up (missing git,
// missing configuration, unusable directory). The outcome of the publish itself is
// the boolean.
func (it *PublishCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PublishOptions,
) (bool, error) {
	if err := it.workingTrees.EnsureTool(ctx); err != nil {
		return false, err
	}

	if err := settings.Validate(); err != nil {
		return false, err
	}

	tree, err := it.workingTrees.Open(ctx, settings.Directory)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	publisher, err := it.newPublisher(ctx, settings, tree, opts)
	if err != nil {
		return false, err
	}

	return publisher.Publish(ctx, opts.Message), nil
}

func (it *PublishCommand) newPublisher(
	ctx context.Context,
	settings *entities.Settings,
	tree repositories.WorkingTreeRepository,
	opts PublishOptions,
) (Publisher, error) {
	switch settings.Method {
	case entities.MethodLocal:
		return NewLocalPublisher(tree, opts.Decider, settings, it.log), nil
	case entities.MethodHosted:
		hosting, err := it.hostingRegistry.Get(ctx, settings.Hosted.Provider, settings.Hosted.Token, settings.Hosted.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create hosting client: %w", err)
		}
		return NewHostedPublisher(tree, hosting, settings, it.log), nil
	default:
		return nil, fmt.Errorf("invalid method %q", settings.Method)
	}
}
