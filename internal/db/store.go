package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// Store defines the interface for database operations.
// Lookups of missing records fail with an apperrors NotFound error.
type Store interface {
	// Repository operations
	GetRepository(ctx context.Context, id string, withReleases bool) (*models.Repository, error)
	GetRepositoryByOwnerAndName(ctx context.Context, owner, name string, withReleases bool) (*models.Repository, error)
	ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error)
	SaveRepository(ctx context.Context, repo *models.Repository) error
	DeleteRepository(ctx context.Context, id string) (bool, error)
	UpdateHasUnseenReleases(ctx context.Context, repositoryID string, value bool) error
	// MarkRepositorySynced stamps last_synced_at and, when newReleases is set,
	// raises the unseen flag. It only updates an existing row.
	MarkRepositorySynced(ctx context.Context, repositoryID string, syncedAt time.Time, newReleases bool) error

	// Release operations
	ListReleasesByRepository(ctx context.Context, repositoryID string) ([]*models.Release, error)
	GetRelease(ctx context.Context, id string) (*models.Release, error)
	SaveRelease(ctx context.Context, release *models.Release) error
	SetReleaseSeen(ctx context.Context, id string, seen bool) (*models.Release, error)
	SetSeenForRepository(ctx context.Context, repositoryID string, seen bool) (int64, error)
	CountUnseenForRepository(ctx context.Context, repositoryID string) (int, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the backend selected by cfg.Driver
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresStore(cfg.ConnectionString)
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// validID reports whether id can possibly name a stored record
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func repositoryNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("repository not found: %s", id), nil)
}

func releaseNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("release not found: %s", id), nil)
}

func stampRepository(repo *models.Repository, now time.Time) {
	if repo.ID == "" {
		repo.ID = uuid.New().String()
	}
	if repo.CreatedAt.IsZero() {
		repo.CreatedAt = now
	}
	repo.UpdatedAt = now
	if repo.FullName == "" {
		repo.FullName = models.FullNameOf(repo.Owner, repo.Name)
	}
}

func stampRelease(release *models.Release, now time.Time) {
	if release.ID == "" {
		release.ID = uuid.New().String()
	}
	if release.CreatedAt.IsZero() {
		release.CreatedAt = now
	}
	release.UpdatedAt = now
	if release.PublishedAt.IsZero() {
		release.PublishedAt = now
	}
}

// groupReleases attaches releases to their repositories, keeping release order
func groupReleases(repos []*models.Repository, releases []*models.Release) {
	byID := make(map[string]*models.Repository, len(repos))
	for _, repo := range repos {
		repo.Releases = []*models.Release{}
		byID[repo.ID] = repo
	}
	for _, release := range releases {
		if repo, ok := byID[release.RepositoryID]; ok {
			repo.Releases = append(repo.Releases, release)
		}
	}
}
