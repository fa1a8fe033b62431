package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// SQLiteStore is a single-file store for local runs. Pass ":memory:" for a
// throwaway database.
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	// Enforce release -> repository references on that connection.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Repository{}, &models.Release{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func orderReleases(db *gorm.DB) *gorm.DB {
	return db.Order("published_at DESC").Order("created_at DESC")
}

func (s *SQLiteStore) repositoryQuery(ctx context.Context, withReleases bool) *gorm.DB {
	q := s.db.WithContext(ctx)
	if withReleases {
		q = q.Preload("Releases", orderReleases)
	}
	return q
}

func (s *SQLiteStore) GetRepository(ctx context.Context, id string, withReleases bool) (*models.Repository, error) {
	var repo models.Repository
	err := s.repositoryQuery(ctx, withReleases).First(&repo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositoryNotFound(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	ensureReleases(&repo, withReleases)
	return &repo, nil
}

func (s *SQLiteStore) GetRepositoryByOwnerAndName(ctx context.Context, owner, name string, withReleases bool) (*models.Repository, error) {
	fullName := models.FullNameOf(owner, name)

	var repo models.Repository
	err := s.repositoryQuery(ctx, withReleases).First(&repo, "full_name = ?", fullName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositoryNotFound(fullName)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	ensureReleases(&repo, withReleases)
	return &repo, nil
}

func (s *SQLiteStore) ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error) {
	repos := []*models.Repository{}
	if err := s.repositoryQuery(ctx, withReleases).Order("full_name").Find(&repos).Error; err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	for _, repo := range repos {
		ensureReleases(repo, withReleases)
	}
	return repos, nil
}

// ensureReleases makes an eagerly loaded repository without releases
// report an empty list rather than nil
func ensureReleases(repo *models.Repository, withReleases bool) {
	if withReleases && repo.Releases == nil {
		repo.Releases = []*models.Release{}
	}
}

func (s *SQLiteStore) SaveRepository(ctx context.Context, repo *models.Repository) error {
	stampRepository(repo, s.now())

	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(repo).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewConflictError(fmt.Sprintf("repository already tracked: %s", repo.FullName), err)
	} else if err != nil {
		return fmt.Errorf("failed to save repository: %w", err)
	}
	return nil
}

// DeleteRepository deletes a repository and its releases in one transaction
func (s *SQLiteStore) DeleteRepository(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("repository_id = ?", id).Delete(&models.Release{}).Error; err != nil {
			return fmt.Errorf("failed to delete releases: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Repository{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete repository: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *SQLiteStore) UpdateHasUnseenReleases(ctx context.Context, repositoryID string, value bool) error {
	res := s.db.WithContext(ctx).
		Model(&models.Repository{}).
		Where("id = ?", repositoryID).
		Updates(map[string]interface{}{
			"has_unseen_releases": value,
			"updated_at":          s.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update unseen flag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositoryNotFound(repositoryID)
	}
	return nil
}

func (s *SQLiteStore) MarkRepositorySynced(ctx context.Context, repositoryID string, syncedAt time.Time, newReleases bool) error {
	updates := map[string]interface{}{
		"last_synced_at": syncedAt,
		"updated_at":     s.now(),
	}
	if newReleases {
		updates["has_unseen_releases"] = true
	}

	res := s.db.WithContext(ctx).
		Model(&models.Repository{}).
		Where("id = ?", repositoryID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to mark repository synced: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositoryNotFound(repositoryID)
	}
	return nil
}

func (s *SQLiteStore) ListReleasesByRepository(ctx context.Context, repositoryID string) ([]*models.Release, error) {
	releases := []*models.Release{}
	err := orderReleases(s.db.WithContext(ctx)).
		Where("repository_id = ?", repositoryID).
		Find(&releases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	return releases, nil
}

func (s *SQLiteStore) GetRelease(ctx context.Context, id string) (*models.Release, error) {
	var release models.Release
	err := s.db.WithContext(ctx).First(&release, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, releaseNotFound(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get release: %w", err)
	}
	return &release, nil
}

func (s *SQLiteStore) SaveRelease(ctx context.Context, release *models.Release) error {
	stampRelease(release, s.now())

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seen", "updated_at"}),
		}).
		Create(release).Error
	if err != nil {
		return fmt.Errorf("failed to save release: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetReleaseSeen(ctx context.Context, id string, seen bool) (*models.Release, error) {
	release, err := s.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(release).
		Updates(map[string]interface{}{
			"seen":       seen,
			"updated_at": s.now(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update release: %w", err)
	}
	release.Seen = seen
	return release, nil
}

func (s *SQLiteStore) SetSeenForRepository(ctx context.Context, repositoryID string, seen bool) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Release{}).
		Where("repository_id = ? AND seen <> ?", repositoryID, seen).
		Updates(map[string]interface{}{
			"seen":       seen,
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update releases: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *SQLiteStore) CountUnseenForRepository(ctx context.Context, repositoryID string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Release{}).
		Where("repository_id = ? AND seen = ?", repositoryID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen releases: %w", err)
	}
	return int(count), nil
}
