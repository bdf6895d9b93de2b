package entities

import "errors"

// Error kinds surfaced by the publish flow. Infrastructure wraps them with
// "%w" so callers can match with errors.Is.
var (
	// ErrToolMissing indicates the git binary is absent or too old.
	ErrToolMissing = errors.New("git is not installed")

	// ErrRemoteMissing indicates there is no push target and the operator declined to supply one.
	ErrRemoteMissing = errors.New("no remote configured")

	// ErrConfigurationMissing indicates hosted mode was requested without its required values.
	ErrConfigurationMissing = errors.New("missing configuration")

	// ErrAuthenticationFailed indicates the hosting service rejected the credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRepositoryNotFound indicates the hosted repository or its default branch does not exist.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrPushRejected indicates the remote refused to move the branch.
	ErrPushRejected = errors.New("push rejected")

	// ErrSyncFailed indicates the reconciliation pull after a publish failed.
	ErrSyncFailed = errors.New("sync failed")
)
