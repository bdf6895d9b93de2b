package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/autopublish/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/autopublish/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/autopublish/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/autopublish/internal/infrastructure/repositories/gitlab"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewDefaultHostingRegistry); err != nil {
		return err
	}

	// Register the working tree factory backed by go-git and the git CLI
	if err := container.Provide(gitRepo.NewWorkingTreeFactory); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gitRepo.WorkingTreeFactory) domainRepos.WorkingTreeFactory {
		return impl
	}); err != nil {
		return err
	}

	return nil
}

// NewDefaultHostingRegistry returns a registry with every supported hosting service.
func NewDefaultHostingRegistry() *HostingRegistry {
	reg := NewHostingRegistry()
	reg.Register(ghRepo.ProviderName, ghRepo.NewHostingRepository)
	reg.Register(glRepo.ProviderName, glRepo.NewHostingRepository)
	return reg
}
