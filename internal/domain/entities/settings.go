package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	MethodLocal  = "local"
	MethodHosted = "hosted"

	DefaultRemoteName     = "origin"
	DefaultFallbackBranch = "main"
	DefaultSyncDelay      = 2 * time.Second
)

// Settings is the runtime configuration for a publish run.
type Settings struct {
	Method         string         `yaml:"method"`          // "local" or "hosted"
	Directory      string         `yaml:"directory"`       // working tree root
	RemoteName     string         `yaml:"remote_name"`     // name given to a newly registered remote
	FallbackBranch string         `yaml:"fallback_branch"` // used in detached-head state
	SyncDelay      time.Duration  `yaml:"sync_delay"`      // wait before the reconciliation pull
	CommitTemplate string         `yaml:"commit_template"` // default message template
	Hosted         HostedSettings `yaml:"hosted"`
}

// HostedSettings holds the values required by the hosted API strategy.
type HostedSettings struct {
	Provider   string `yaml:"provider"`   // "github" or "gitlab"
	Token      string `yaml:"token"`      // Inline, ${ENV_VAR}, or file path
	Repository string `yaml:"repository"` // repository name without owner
	Owner      string `yaml:"owner"`      // account or organization
	BaseURL    string `yaml:"base_url"`   // enterprise / self-managed API endpoint
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns settings that reproduce the behaviour with no config file.
func NewDefaultSettings() *Settings {
	return &Settings{
		Method:         MethodLocal,
		Directory:      ".",
		RemoteName:     DefaultRemoteName,
		FallbackBranch: DefaultFallbackBranch,
		SyncDelay:      DefaultSyncDelay,
		CommitTemplate: DefaultCommitTemplate,
		Hosted:         HostedSettings{Provider: ProviderGitHub},
	}
}

// NewSettings builds settings from defaults, an optional config file, a .env file
// in the working directory, and the environment, in that order of precedence.
// A non-empty directory overrides the one from the config file.
func NewSettings(path, directory string) (*Settings, error) {
	settings := NewDefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if directory != "" {
		settings.Directory = directory
	}

	LoadDotEnv(settings.Directory)
	settings.ApplyEnvironment()
	settings.Normalize()

	return settings, nil
}

// FindConfigFile searches for a configuration file in the target directory
// first, then in the standard locations. Returns the path to the first file
// found or an error if none is found.
func FindConfigFile(directory string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	var locations []string
	if directory != "" && directory != "." {
		locations = append(locations, directory, filepath.Join(directory, ".config"))
	}
	locations = append(locations, ".", ".config", "configs")
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".autopublish.yaml",
		".autopublish.yml",
		"autopublish.yaml",
		"autopublish.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// LoadDotEnv loads a .env file from dir into the process environment without
// overriding variables that are already set.
func LoadDotEnv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logger.Warnf("Failed to load %q: %v", path, err)
		return
	}
	logger.Debugf("Loaded environment from %q", path)
}

// ApplyEnvironment overrides hosted values with environment variables when they are set.
func (s *Settings) ApplyEnvironment() {
	if method := os.Getenv("AUTOPUBLISH_METHOD"); method != "" {
		s.Method = method
	}
	if provider := os.Getenv("AUTOPUBLISH_PROVIDER"); provider != "" {
		s.Hosted.Provider = provider
	}

	prefix := strings.ToUpper(s.Hosted.Provider)
	if prefix == "" {
		prefix = strings.ToUpper(ProviderGitHub)
	}
	shortPrefix := map[string]string{"GITHUB": "GH", "GITLAB": "GL"}[prefix]

	s.Hosted.Token = firstEnv(s.Hosted.Token, "AUTOPUBLISH_TOKEN", prefix+"_TOKEN", shortPrefix+"_TOKEN")
	s.Hosted.Repository = firstEnv(s.Hosted.Repository, "AUTOPUBLISH_REPO", prefix+"_REPO")
	s.Hosted.Owner = firstEnv(s.Hosted.Owner, "AUTOPUBLISH_OWNER", prefix+"_USERNAME", prefix+"_OWNER")
	s.Hosted.BaseURL = firstEnv(s.Hosted.BaseURL, "AUTOPUBLISH_BASE_URL", prefix+"_BASE_URL")
}

// Normalize fills zero values with defaults, maps legacy method names and resolves the token.
func (s *Settings) Normalize() {
	defaults := NewDefaultSettings()

	switch strings.ToUpper(strings.TrimSpace(s.Method)) {
	case "", "LOCAL", "LOCALCONFIG":
		s.Method = MethodLocal
	case "HOSTED", "ENVCONFIG", "API":
		s.Method = MethodHosted
	default:
		s.Method = strings.ToLower(strings.TrimSpace(s.Method))
	}

	if s.Directory == "" {
		s.Directory = defaults.Directory
	}
	if s.RemoteName == "" {
		s.RemoteName = defaults.RemoteName
	}
	if s.FallbackBranch == "" {
		s.FallbackBranch = defaults.FallbackBranch
	}
	if s.SyncDelay < 0 {
		s.SyncDelay = 0
	}
	if s.CommitTemplate == "" {
		s.CommitTemplate = defaults.CommitTemplate
	}
	if s.Hosted.Provider == "" {
		s.Hosted.Provider = defaults.Hosted.Provider
	}
	s.Hosted.Provider = strings.ToLower(s.Hosted.Provider)
	s.Hosted.Token = ResolveToken(s.Hosted.Token)
}

// Validate checks the method and, in hosted mode, that token, repository and
// owner are all present.
func (s *Settings) Validate() error {
	switch s.Method {
	case MethodLocal:
		return nil
	case MethodHosted:
		return s.Hosted.Validate()
	default:
		return fmt.Errorf("invalid method %q: expected %q or %q", s.Method, MethodLocal, MethodHosted)
	}
}

// Validate reports every missing hosted value at once.
func (h HostedSettings) Validate() error {
	var missing []string
	if h.Token == "" {
		missing = append(missing, "token")
	}
	if h.Repository == "" {
		missing = append(missing, "repository")
	}
	if h.Owner == "" {
		missing = append(missing, "owner")
	}
	if len(missing) > 0 {
		return fmt.Errorf(
			"%w: hosted mode requires %s (set them in the config file, .env, or environment)",
			ErrConfigurationMissing, strings.Join(missing, ", "),
		)
	}
	return nil
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func firstEnv(current string, keys ...string) string {
	for _, key := range keys {
		if key == "" || strings.HasPrefix(key, "_") {
			continue
		}
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return current
}
