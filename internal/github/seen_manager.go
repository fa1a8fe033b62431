package github

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/db"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// SeenManagerImpl keeps release seen flags and the repository's cached
// has_unseen_releases flag in step. The recount is a plain read followed by
// a write and is not atomic with concurrent syncs.
type SeenManagerImpl struct {
	store  db.Store
	logger *logrus.Logger
}

// NewSeenManager creates a new seen-state manager
func NewSeenManager(store db.Store, logger *logrus.Logger) *SeenManagerImpl {
	return &SeenManagerImpl{
		store:  store,
		logger: logger,
	}
}

// MarkAllReleasesSeen marks every release of the repository seen and clears
// its flag. A repository without releases is left untouched.
func (m *SeenManagerImpl) MarkAllReleasesSeen(ctx context.Context, repositoryID string) (*models.Repository, error) {
	repo, err := m.store.GetRepository(ctx, repositoryID, true)
	if err != nil {
		return nil, err
	}
	if len(repo.Releases) == 0 {
		return repo, nil
	}

	changed, err := m.store.SetSeenForRepository(ctx, repo.ID, true)
	if err != nil {
		return nil, err
	}
	if err := m.store.UpdateHasUnseenReleases(ctx, repo.ID, false); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"repository":    repo.FullName,
		"repository_id": repo.ID,
		"changed":       changed,
	}).Info("Marked all releases seen")

	return m.store.GetRepository(ctx, repo.ID, true)
}

// MarkReleaseSeen marks one release seen and recomputes the repository flag
func (m *SeenManagerImpl) MarkReleaseSeen(ctx context.Context, releaseID string) (*models.Release, error) {
	return m.setSeen(ctx, releaseID, true)
}

// MarkReleaseUnseen flags one release unseen again; the repository flag
// follows from the recount
func (m *SeenManagerImpl) MarkReleaseUnseen(ctx context.Context, releaseID string) (*models.Release, error) {
	return m.setSeen(ctx, releaseID, false)
}

func (m *SeenManagerImpl) setSeen(ctx context.Context, releaseID string, seen bool) (*models.Release, error) {
	release, err := m.store.SetReleaseSeen(ctx, releaseID, seen)
	if err != nil {
		return nil, err
	}

	if err := m.recomputeUnseen(ctx, release.RepositoryID); err != nil {
		return nil, err
	}
	return release, nil
}

func (m *SeenManagerImpl) recomputeUnseen(ctx context.Context, repositoryID string) error {
	count, err := m.store.CountUnseenForRepository(ctx, repositoryID)
	if err != nil {
		return err
	}
	m.logger.WithFields(logrus.Fields{
		"repository_id": repositoryID,
		"unseen":        count,
	}).Debug("Recomputed unseen releases")
	return m.store.UpdateHasUnseenReleases(ctx, repositoryID, count > 0)
}
