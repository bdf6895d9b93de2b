package commands

import "time"

// Wait exports wait for testing.
var Wait = wait //nolint:gochecknoglobals // test export

// SetLocalClock replaces the clock used for default commit messages.
func SetLocalClock(p *LocalPublisher, now func() time.Time) { p.now = now }

// SetHostedClock replaces the clock used for default commit messages.
func SetHostedClock(p *HostedPublisher, now func() time.Time) { p.now = now }
