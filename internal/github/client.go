package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// Client fetches repository metadata and releases from the GitHub REST API.
// It never retries; callers see every failure.
type Client struct {
	gh      *gh.Client
	perPage int
	logger  *logrus.Logger
}

// NewClient creates a GitHub client from cfg. A missing token is allowed.
func NewClient(cfg config.GitHubConfig, logger *logrus.Logger) (*Client, error) {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		logger.Warn("GITHUB_TOKEN is not set, GitHub API requests will be unauthenticated and rate limited")
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout

	client := &Client{
		gh:      gh.NewClient(httpClient),
		perPage: cfg.PerPage,
		logger:  logger,
	}

	if cfg.APIBaseURL != "" {
		baseURL, err := url.Parse(withTrailingSlash(cfg.APIBaseURL))
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIBaseURL, err)
		}
		client.gh.BaseURL = baseURL
	}

	return client, nil
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// FetchRepository gets the current metadata of owner/name
func (c *Client) FetchRepository(ctx context.Context, owner, name string) (*RepoSnapshot, error) {
	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classifyError("get repository", err)
	}
	c.logRate(resp, owner, name)

	snapshot := &RepoSnapshot{
		Owner:           repo.GetOwner().GetLogin(),
		Name:            repo.GetName(),
		FullName:        repo.GetFullName(),
		Description:     repo.GetDescription(),
		StargazersCount: repo.GetStargazersCount(),
		ForksCount:      repo.GetForksCount(),
		WatchersCount:   repo.GetWatchersCount(),
		OpenIssuesCount: repo.GetOpenIssuesCount(),
	}
	if snapshot.Owner == "" {
		snapshot.Owner = owner
	}
	if snapshot.Name == "" {
		snapshot.Name = name
	}
	if snapshot.FullName == "" {
		snapshot.FullName = models.FullNameOf(snapshot.Owner, snapshot.Name)
	}
	return snapshot, nil
}

// FetchReleases returns the first page of releases, newest first as GitHub
// orders them. Older releases beyond the page size are not fetched.
func (c *Client) FetchReleases(ctx context.Context, owner, name string) ([]*ReleaseSnapshot, error) {
	releases, resp, err := c.gh.Repositories.ListReleases(ctx, owner, name, &gh.ListOptions{PerPage: c.perPage})
	if err != nil {
		return nil, classifyError("list releases", err)
	}
	c.logRate(resp, owner, name)

	snapshots := make([]*ReleaseSnapshot, 0, len(releases))
	for _, r := range releases {
		snapshot := &ReleaseSnapshot{
			TagName: r.GetTagName(),
			Name:    r.GetName(),
			Body:    r.GetBody(),
			HTMLURL: r.GetHTMLURL(),
		}
		if r.PublishedAt != nil {
			published := r.PublishedAt.Time
			snapshot.PublishedAt = &published
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func (c *Client) logRate(resp *gh.Response, owner, name string) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	fields := logrus.Fields{
		"repository": models.FullNameOf(owner, name),
		"limit":      resp.Rate.Limit,
		"remaining":  resp.Rate.Remaining,
		"reset":      resp.Rate.Reset.Time,
	}
	if resp.Rate.Remaining*10 < resp.Rate.Limit {
		c.logger.WithFields(fields).Warn("GitHub rate limit running low")
		return
	}
	c.logger.WithFields(fields).Debug("GitHub rate limit")
}
