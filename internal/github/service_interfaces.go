package github

import (
	"context"

	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// ReleaseClient is the upstream API surface the services depend on
type ReleaseClient interface {
	FetchRepository(ctx context.Context, owner, name string) (*RepoSnapshot, error)
	FetchReleases(ctx context.Context, owner, name string) ([]*ReleaseSnapshot, error)
}

// RepositoryService defines the read and remove operations on tracked repositories
type RepositoryService interface {
	// ListRepositories returns every tracked repository, optionally with releases
	ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error)

	// GetRepository returns one repository with its releases
	GetRepository(ctx context.Context, id string) (*models.Repository, error)

	// RemoveRepository deletes a repository and its releases, reporting whether anything was removed
	RemoveRepository(ctx context.Context, id string) (bool, error)

	// ListReleases returns the stored releases of a repository, newest first
	ListReleases(ctx context.Context, repositoryID string) ([]*models.Release, error)
}

// SyncService defines the interface for sync operations
type SyncService interface {
	// TrackRepository starts tracking owner/name, or returns the existing record.
	// The bool is true when the repository was created by this call.
	TrackRepository(ctx context.Context, owner, name string) (*models.Repository, bool, error)

	// SyncRepository pulls new releases for one repository
	SyncRepository(ctx context.Context, id string) (*models.Repository, error)

	// SyncAllRepositories syncs every tracked repository, logging individual failures
	SyncAllRepositories(ctx context.Context) (*models.BulkSyncResult, error)
}

// SeenManager defines the interface for seen-state bookkeeping
type SeenManager interface {
	MarkAllReleasesSeen(ctx context.Context, repositoryID string) (*models.Repository, error)
	MarkReleaseSeen(ctx context.Context, releaseID string) (*models.Release, error)
	MarkReleaseUnseen(ctx context.Context, releaseID string) (*models.Release, error)
}
