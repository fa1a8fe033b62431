package github

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/batch"
	"github.com/Kamar-Folarin/github-release-tracker/internal/db"
	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
	"github.com/Kamar-Folarin/github-release-tracker/internal/utils"
)

// SyncServiceImpl implements the SyncService interface
type SyncServiceImpl struct {
	client    ReleaseClient
	store     db.Store
	processor *batch.Processor[*models.Repository]
	logger    *logrus.Logger
	now       func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(
	client ReleaseClient,
	store db.Store,
	processor *batch.Processor[*models.Repository],
	logger *logrus.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		client:    client,
		store:     store,
		processor: processor,
		logger:    logger,
		now:       time.Now,
	}
}

// TrackRepository returns the stored repository for owner/name if there is
// one. Otherwise it fetches the metadata, stores the repository and pulls
// its releases. A release fetch failure leaves the repository tracked with
// no releases. The bool reports whether this call created the repository.
func (s *SyncServiceImpl) TrackRepository(ctx context.Context, owner, name string) (*models.Repository, bool, error) {
	if err := utils.ValidateOwnerAndName(owner, name); err != nil {
		return nil, false, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"repository": models.FullNameOf(owner, name),
		"action":     "track",
	})

	existing, err := s.store.GetRepositoryByOwnerAndName(ctx, owner, name, true)
	if err == nil {
		logger.Debug("Repository already tracked")
		return existing, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	snapshot, err := s.client.FetchRepository(ctx, owner, name)
	if err != nil {
		logger.WithError(err).Error("Failed to fetch repository from GitHub")
		return nil, false, err
	}

	now := s.now()
	repo := &models.Repository{
		// Keep the caller's spelling so later lookups by owner/name hit.
		Owner:           owner,
		Name:            name,
		FullName:        models.FullNameOf(owner, name),
		Description:     snapshot.Description,
		StargazersCount: snapshot.StargazersCount,
		ForksCount:      snapshot.ForksCount,
		WatchersCount:   snapshot.WatchersCount,
		OpenIssuesCount: snapshot.OpenIssuesCount,
		LastSyncedAt:    &now,
	}
	if err := s.store.SaveRepository(ctx, repo); err != nil {
		if apperrors.IsConflict(err) {
			// Tracked concurrently by another caller.
			existing, err := s.store.GetRepositoryByOwnerAndName(ctx, owner, name, true)
			return existing, false, err
		}
		return nil, false, err
	}
	logger = logger.WithField("repository_id", repo.ID)
	logger.Info("Started tracking repository")

	if _, err := s.syncReleases(ctx, repo); err != nil {
		logger.WithError(err).Warn("Initial release sync failed, repository stays tracked")
	}

	tracked, err := s.store.GetRepository(ctx, repo.ID, true)
	if err != nil {
		return nil, false, err
	}
	return tracked, true, nil
}

// SyncRepository pulls new releases for the repository with the given id
func (s *SyncServiceImpl) SyncRepository(ctx context.Context, id string) (*models.Repository, error) {
	repo, err := s.store.GetRepository(ctx, id, false)
	if err != nil {
		return nil, err
	}

	created, err := s.syncReleases(ctx, repo)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"repository":    repo.FullName,
			"repository_id": repo.ID,
		}).WithError(err).Error("Failed to sync releases")
		return nil, apperrors.NewSyncFailedError(fmt.Sprintf("failed to sync releases for %s", repo.FullName), err)
	}

	s.logger.WithFields(logrus.Fields{
		"repository":   repo.FullName,
		"new_releases": created,
	}).Info("Repository synced")

	return s.store.GetRepository(ctx, repo.ID, true)
}

// SyncAllRepositories syncs every tracked repository. Individual failures
// are logged and reported in the result; only a failure to list the
// repositories fails the whole run.
func (s *SyncServiceImpl) SyncAllRepositories(ctx context.Context) (*models.BulkSyncResult, error) {
	repos, err := s.store.ListRepositories(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	result := &models.BulkSyncResult{
		Total:     len(repos),
		StartedAt: s.now(),
	}
	s.logger.WithFields(logrus.Fields{
		"repositories": len(repos),
		"workers":      s.processor.Workers(),
	}).Info("Starting sync of all repositories")

	errs := s.processor.ProcessItems(ctx, repos, func(ctx context.Context, repo *models.Repository) error {
		_, err := s.SyncRepository(ctx, repo.ID)
		return err
	})

	for i, err := range errs {
		if err == nil {
			result.Synced++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, models.SyncFailure{
			RepositoryID: repos[i].ID,
			FullName:     repos[i].FullName,
			Error:        err.Error(),
		})
		s.logger.WithFields(logrus.Fields{
			"repository":    repos[i].FullName,
			"repository_id": repos[i].ID,
		}).WithError(err).Warn("Repository sync failed, continuing")
	}
	result.FinishedAt = s.now()

	s.logger.WithFields(logrus.Fields{
		"total":  result.Total,
		"synced": result.Synced,
		"failed": result.Failed,
	}).Info("Finished sync of all repositories")

	return result, nil
}

// syncReleases inserts every upstream release whose tag is not stored yet,
// then stamps the repository in place. Stored releases are never modified
// here and the unseen flag is only ever raised. A repository removed while
// the sync runs stays removed.
func (s *SyncServiceImpl) syncReleases(ctx context.Context, repo *models.Repository) (int, error) {
	upstream, err := s.client.FetchReleases(ctx, repo.Owner, repo.Name)
	if err != nil {
		return 0, err
	}

	stored, err := s.store.ListReleasesByRepository(ctx, repo.ID)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(stored))
	for _, release := range stored {
		known[release.TagName] = struct{}{}
	}

	created := 0
	for _, snapshot := range upstream {
		if _, ok := known[snapshot.TagName]; ok {
			continue
		}

		release := &models.Release{
			RepositoryID: repo.ID,
			TagName:      snapshot.TagName,
			Name:         snapshot.Name,
			Body:         snapshot.Body,
			HTMLURL:      snapshot.HTMLURL,
			PublishedAt:  s.now(),
			Seen:         false,
		}
		if snapshot.PublishedAt != nil {
			release.PublishedAt = *snapshot.PublishedAt
		}
		if err := s.store.SaveRelease(ctx, release); err != nil {
			return created, err
		}
		created++
	}

	now := s.now()
	if err := s.store.MarkRepositorySynced(ctx, repo.ID, now, created > 0); err != nil {
		return created, err
	}
	repo.LastSyncedAt = &now
	if created > 0 {
		repo.HasUnseenReleases = true
	}
	return created, nil
}
