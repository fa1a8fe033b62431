package github

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/db"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// RepositoryServiceImpl implements the RepositoryService interface
type RepositoryServiceImpl struct {
	store  db.Store
	logger *logrus.Logger
}

// NewRepositoryService creates a new repository service
func NewRepositoryService(store db.Store, logger *logrus.Logger) *RepositoryServiceImpl {
	return &RepositoryServiceImpl{
		store:  store,
		logger: logger,
	}
}

func (s *RepositoryServiceImpl) ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error) {
	return s.store.ListRepositories(ctx, withReleases)
}

func (s *RepositoryServiceImpl) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	return s.store.GetRepository(ctx, id, true)
}

func (s *RepositoryServiceImpl) RemoveRepository(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.DeleteRepository(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.WithField("repository_id", id).Info("Stopped tracking repository")
	}
	return removed, nil
}

func (s *RepositoryServiceImpl) ListReleases(ctx context.Context, repositoryID string) ([]*models.Release, error) {
	// Distinguish an unknown repository from one without releases.
	if _, err := s.store.GetRepository(ctx, repositoryID, false); err != nil {
		return nil, err
	}
	return s.store.ListReleasesByRepository(ctx, repositoryID)
}
