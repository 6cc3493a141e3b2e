package entities

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

const (
	DefaultConfigPath    = "versions.yml"
	DefaultSummaryPath   = "out/version-updates.json"
	DefaultGitHubAPIURL  = "https://api.github.com/"
	DefaultKernelFeedURL = "https://www.kernel.org/releases.json"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultHTTPRetries   = 2
)

// Environment variables read by NewSettings.
const (
	EnvConfigPath       = "VERSIONS_YML"
	EnvAllowMajorBumps  = "ALLOW_MAJOR_BUMPS"
	EnvAllowPrereleases = "ALLOW_RC"
	EnvGitHubToken      = "GITHUB_TOKEN"
	EnvSummaryPath      = "PINWATCH_SUMMARY"
	EnvGitHubAPIURL     = "PINWATCH_GITHUB_API"
	EnvKernelFeedURL    = "PINWATCH_KERNEL_FEED"
	EnvHTTPTimeout      = "PINWATCH_HTTP_TIMEOUT"
	EnvHTTPRetries      = "PINWATCH_HTTP_RETRIES"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the process-wide configuration threaded into commands and sources.
type Settings struct {
	ConfigPath    string
	SummaryPath   string
	ChangelogPath string // optional Keep-a-Changelog file to append bumps to
	GitHubToken   string
	GitHubAPIURL  string
	KernelFeedURL string
	HTTPTimeout   time.Duration
	HTTPRetries   int
	Policy        BumpPolicy
}

// LookupFunc mirrors os.LookupEnv so tests can inject an environment.
type LookupFunc func(key string) (string, bool)

// NewSettings builds Settings from the given environment lookup, applying defaults.
func NewSettings(lookup LookupFunc) (*Settings, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key, fallback string) string {
		if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
		return fallback
	}

	settings := &Settings{
		ConfigPath:    get(EnvConfigPath, DefaultConfigPath),
		SummaryPath:   get(EnvSummaryPath, DefaultSummaryPath),
		GitHubToken:   get(EnvGitHubToken, ""),
		GitHubAPIURL:  get(EnvGitHubAPIURL, DefaultGitHubAPIURL),
		KernelFeedURL: get(EnvKernelFeedURL, DefaultKernelFeedURL),
		HTTPTimeout:   DefaultHTTPTimeout,
		HTTPRetries:   DefaultHTTPRetries,
		Policy: BumpPolicy{
			AllowMajorBumps:  ParseFlag(get(EnvAllowMajorBumps, "false")),
			AllowPrereleases: ParseFlag(get(EnvAllowPrereleases, "false")),
		},
	}

	if raw := get(EnvHTTPTimeout, ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvHTTPTimeout, raw, err)
		}
		settings.HTTPTimeout = timeout
	}
	if raw := get(EnvHTTPRetries, ""); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvHTTPRetries, raw, err)
		}
		settings.HTTPRetries = retries
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// ParseFlag treats only a case-insensitive "true" as enabled.
func ParseFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if it.ConfigPath == "" {
		return errors.New("config path is required")
	}
	if it.SummaryPath == "" {
		return errors.New("summary path is required")
	}
	if it.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", it.HTTPTimeout)
	}
	if it.HTTPRetries < 0 {
		return fmt.Errorf("http retries must not be negative, got %d", it.HTTPRetries)
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

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
