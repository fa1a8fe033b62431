package config

import (
	"fmt"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.github.com/"
	defaultTimeout    = 30 * time.Second
	maxPerPage        = 100
)

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	// Token is optional; requests are unauthenticated without it
	Token      string
	APIBaseURL string
	Timeout    time.Duration
	PerPage    int
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL: defaultAPIBaseURL,
		Timeout:    defaultTimeout,
		PerPage:    maxPerPage,
	}
}

func (c GitHubConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("GITHUB_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.PerPage < 1 || c.PerPage > maxPerPage {
		return fmt.Errorf("GITHUB_PER_PAGE must be between 1 and %d, got %d", maxPerPage, c.PerPage)
	}
	return nil
}
