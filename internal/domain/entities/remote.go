package entities

import (
	"fmt"
	"strings"
)

const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// Remote is a named push target configured in the local repository.
type Remote struct {
	Name string
	URL  string
}

// RemoteInfo holds the parsed components of a Git remote URL.
type RemoteInfo struct {
	ProviderType string
	Host         string
	Org          string
	RepoName     string
}

// ParseRemoteURL extracts host, org and repo name from an HTTPS or SCP-like SSH remote URL.
func ParseRemoteURL(rawURL string) (*RemoteInfo, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	var host, pathPart string
	switch {
	case strings.Contains(cleaned, "://"):
		_, rest, _ := strings.Cut(cleaned, "://")
		var found bool
		host, pathPart, found = strings.Cut(rest, "/")
		if !found {
			return nil, fmt.Errorf("cannot extract org/repo from URL: %s", rawURL)
		}
		if _, after, ok := strings.Cut(host, "@"); ok {
			host = after
		}
	case strings.Contains(cleaned, ":"):
		var found bool
		host, pathPart, found = strings.Cut(cleaned, ":")
		if !found {
			return nil, fmt.Errorf("invalid SSH URL: %s", rawURL)
		}
		if _, after, ok := strings.Cut(host, "@"); ok {
			host = after
		}
	default:
		return nil, fmt.Errorf("unsupported git remote URL: %s", rawURL)
	}

	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}

	segments := strings.Split(strings.Trim(pathPart, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[len(segments)-1] == "" { //nolint:mnd // need org + repo
		return nil, fmt.Errorf("cannot extract org/repo from URL: %s", rawURL)
	}

	return &RemoteInfo{
		ProviderType: providerFromHost(host),
		Host:         host,
		Org:          strings.Join(segments[:len(segments)-1], "/"),
		RepoName:     segments[len(segments)-1],
	}, nil
}

// Matches reports whether the remote points at owner/name, ignoring case.
func (r *RemoteInfo) Matches(owner, name string) bool {
	return strings.EqualFold(r.Org, owner) && strings.EqualFold(r.RepoName, name)
}

func providerFromHost(host string) string {
	switch {
	case strings.Contains(host, "github"):
		return ProviderGitHub
	case strings.Contains(host, "gitlab"):
		return ProviderGitLab
	default:
		return ""
	}
}
