package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/httpclient"
)

const (
	sourceName  = "github"
	tagsPerPage = 50
	mediaType   = "application/vnd.github+json"
)

// locatorPattern accepts https://github.com/OWNER/REPO with optional ".git" and trailing slash.
var locatorPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// Locator identifies a GitHub repository.
type Locator struct {
	Owner string
	Repo  string
}

func (l Locator) String() string { return l.Owner + "/" + l.Repo }

// ParseLocator extracts owner and repository from a GitHub URL.
func ParseLocator(repoURL string) (Locator, bool) {
	m := locatorPattern.FindStringSubmatch(strings.TrimSpace(repoURL))
	if m == nil {
		return Locator{}, false
	}
	return Locator{Owner: m[1], Repo: m[2]}, true
}

// GitHubSourceRepository implements repositories.SourceRepository on top of the
// GitHub REST API: latest release first, then the best tag of the first page.
type GitHubSourceRepository struct {
	client *gh.Client
}

// NewGitHubSourceRepository creates a GitHub source from the run settings.
func NewGitHubSourceRepository(settings *entities.Settings) repositories.SourceRepository {
	headers := http.Header{}
	headers.Set("Accept", mediaType)
	if settings.GitHubToken != "" {
		headers.Set("Authorization", "Bearer "+settings.GitHubToken)
	}

	retrying := httpclient.NewRetryableClient(settings.HTTPTimeout, settings.HTTPRetries)
	client := gh.NewClient(httpclient.NewStandardClient(retrying, headers))

	if settings.GitHubAPIURL != "" {
		apiURL := settings.GitHubAPIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		if baseURL, err := url.Parse(apiURL); err == nil {
			client.BaseURL = baseURL
		} else {
			logger.Warnf("Ignoring invalid GitHub API URL %q: %v", settings.GitHubAPIURL, err)
		}
	}

	return NewGitHubSourceRepositoryWithClient(client)
}

// NewGitHubSourceRepositoryWithClient wraps an already configured go-github client.
func NewGitHubSourceRepositoryWithClient(client *gh.Client) *GitHubSourceRepository {
	return &GitHubSourceRepository{client: client}
}

func (it *GitHubSourceRepository) Name() string { return sourceName }

// LatestVersion resolves the component's repository and returns its newest tag.
func (it *GitHubSourceRepository) LatestVersion(
	ctx context.Context,
	component entities.Component,
	policy entities.BumpPolicy,
) (string, bool, error) {
	locator, ok := ParseLocator(component.Repo)
	if !ok {
		return "", false, fmt.Errorf("%w: %q", repositories.ErrUnparseableLocator, component.Repo)
	}

	if tag, found := it.LatestReleaseTag(ctx, locator); found {
		return tag, true, nil
	}

	tag, found, err := it.BestTag(ctx, locator, policy)
	if err != nil {
		return "", false, err
	}
	return tag, found, nil
}

// LatestReleaseTag queries the "latest release" endpoint. Any failure (including a
// repository that does not publish releases) is reported as not found.
func (it *GitHubSourceRepository) LatestReleaseTag(ctx context.Context, locator Locator) (string, bool) {
	release, _, err := it.client.Repositories.GetLatestRelease(ctx, locator.Owner, locator.Repo)
	if err != nil {
		logger.Debugf("[%s] no latest release for %s: %v", sourceName, locator, err)
		return "", false
	}
	tag := release.GetTagName()
	return tag, tag != ""
}

// BestTag picks the greatest tag of the first page of the tag listing. Only one
// page is inspected.
func (it *GitHubSourceRepository) BestTag(
	ctx context.Context,
	locator Locator,
	policy entities.BumpPolicy,
) (string, bool, error) {
	tags, _, err := it.client.Repositories.ListTags(
		ctx, locator.Owner, locator.Repo, &gh.ListOptions{PerPage: tagsPerPage},
	)
	if err != nil {
		return "", false, fmt.Errorf("failed to list tags of %s: %w", locator, err)
	}

	best := ""
	for _, tag := range tags {
		name := tag.GetName()
		if name == "" || !policy.AcceptsTag(name) {
			continue
		}
		if best == "" || entities.CompareVersions(name, best) > 0 {
			best = name
		}
	}

	if best != "" {
		logger.Debugf("[%s] best tag of %s is %s (out of %d)", sourceName, locator, best, len(tags))
	}
	return best, best != "", nil
}
