package github

import "time"

// RepoSnapshot is the repository metadata GitHub reported at fetch time
type RepoSnapshot struct {
	Owner           string
	Name            string
	FullName        string
	Description     string
	StargazersCount int
	ForksCount      int
	WatchersCount   int
	OpenIssuesCount int
}

// ReleaseSnapshot is one upstream release. PublishedAt is nil for drafts
// and other releases GitHub has not dated.
type ReleaseSnapshot struct {
	TagName     string
	Name        string
	Body        string
	HTMLURL     string
	PublishedAt *time.Time
}
