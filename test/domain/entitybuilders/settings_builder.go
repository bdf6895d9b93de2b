//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	method         string
	directory      string
	remoteName     string
	fallbackBranch string
	syncDelay      time.Duration
	commitTemplate string
	hosted         entities.HostedSettings
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
// The sync delay is zero so tests never sleep.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SettingsBuilder) defaults() {
	b.method = entities.MethodLocal
	b.directory = "."
	b.remoteName = entities.DefaultRemoteName
	b.fallbackBranch = entities.DefaultFallbackBranch
	b.syncDelay = 0
	b.commitTemplate = entities.DefaultCommitTemplate
	b.hosted = entities.HostedSettings{Provider: entities.ProviderGitHub}
}

// WithMethod sets the publish method.
func (b *SettingsBuilder) WithMethod(method string) *SettingsBuilder {
	b.method = method
	return b
}

// WithDirectory sets the working tree directory.
func (b *SettingsBuilder) WithDirectory(directory string) *SettingsBuilder {
	b.directory = directory
	return b
}

// WithRemoteName sets the name used for a newly registered remote.
func (b *SettingsBuilder) WithRemoteName(name string) *SettingsBuilder {
	b.remoteName = name
	return b
}

// WithFallbackBranch sets the branch used in detached-head state.
func (b *SettingsBuilder) WithFallbackBranch(branch string) *SettingsBuilder {
	b.fallbackBranch = branch
	return b
}

// WithSyncDelay sets the wait before the reconciliation pull.
func (b *SettingsBuilder) WithSyncDelay(delay time.Duration) *SettingsBuilder {
	b.syncDelay = delay
	return b
}

// WithCommitTemplate sets the default commit message template.
func (b *SettingsBuilder) WithCommitTemplate(template string) *SettingsBuilder {
	b.commitTemplate = template
	return b
}

// WithHosted switches to hosted mode with the given provider, token, owner and repository.
func (b *SettingsBuilder) WithHosted(provider, token, owner, repository string) *SettingsBuilder {
	b.method = entities.MethodHosted
	b.hosted = entities.HostedSettings{
		Provider:   provider,
		Token:      token,
		Owner:      owner,
		Repository: repository,
	}
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Method:         b.method,
		Directory:      b.directory,
		RemoteName:     b.remoteName,
		FallbackBranch: b.fallbackBranch,
		SyncDelay:      b.syncDelay,
		CommitTemplate: b.commitTemplate,
		Hosted:         b.hosted,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		method:         b.method,
		directory:      b.directory,
		remoteName:     b.remoteName,
		fallbackBranch: b.fallbackBranch,
		syncDelay:      b.syncDelay,
		commitTemplate: b.commitTemplate,
		hosted:         b.hosted,
	}
}
